package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// FactorsClient implements okta.FactorsClient.
type FactorsClient struct {
	httpClient *http.Client
}

// NewFactorsClient creates a new factors client.
func NewFactorsClient(httpClient *http.Client) *FactorsClient {
	return &FactorsClient{
		httpClient: httpClient,
	}
}

func factorsPath(userID string, parts ...string) string {
	return userPath(userID, append([]string{"factors"}, parts...)...)
}

func checkFactorIDs(userID, factorID string) error {
	if userID == "" {
		return okta.ErrUserIDRequired
	}

	if factorID == "" {
		return okta.ErrFactorIDRequired
	}

	return nil
}

// Catalog implements okta.FactorsClient.Catalog.
func (c *FactorsClient) Catalog(ctx context.Context, userID string) ([]*okta.FactorCatalogEntry, error) {
	if userID == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, factorsPath(userID, "catalog"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting factor catalog: %w", err)
	}

	return decodeMany(resp, okta.FactorCatalogEntrySchema, "factor catalog")
}

// List implements okta.FactorsClient.List.
func (c *FactorsClient) List(ctx context.Context, userID string) ([]*okta.Factor, error) {
	if userID == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, factorsPath(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing factors: %w", err)
	}

	return decodeMany(resp, okta.FactorSchema, "factor")
}

// Questions implements okta.FactorsClient.Questions.
func (c *FactorsClient) Questions(ctx context.Context, userID string) ([]*okta.Question, error) {
	if userID == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, factorsPath(userID, "questions"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing security questions: %w", err)
	}

	return decodeMany(resp, okta.QuestionSchema, "question")
}

// Get implements okta.FactorsClient.Get.
func (c *FactorsClient) Get(ctx context.Context, userID, factorID string) (*okta.Factor, error) {
	if err := checkFactorIDs(userID, factorID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, factorsPath(userID, escape(factorID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting factor: %w", err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}

// Enroll implements okta.FactorsClient.Enroll.
func (c *FactorsClient) Enroll(
	ctx context.Context, userID string, factor *okta.Factor, opts *okta.EnrollFactorOptions,
) (*okta.Factor, error) {
	if userID == "" {
		return nil, okta.ErrUserIDRequired
	}

	if factor == nil {
		return nil, okta.ErrNilRequest
	}

	if opts == nil {
		opts = &okta.EnrollFactorOptions{}
	}

	query := url.Values{
		"updatePhone": {strconv.FormatBool(opts.UpdatePhone)},
		"activate":    {strconv.FormatBool(opts.Activate)},
	}

	resp, err := c.httpClient.PostWithQuery(ctx, factorsPath(userID), query, factor)
	if err != nil {
		return nil, fmt.Errorf("enrolling factor: %w", err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}

// EnrollEmail implements okta.FactorsClient.EnrollEmail.
func (c *FactorsClient) EnrollEmail(ctx context.Context, userID, email string) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewEmailFactor(email), nil)
}

// EnrollSMS implements okta.FactorsClient.EnrollSMS.
func (c *FactorsClient) EnrollSMS(
	ctx context.Context, userID, phoneNumber string, opts *okta.EnrollFactorOptions,
) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewSMSFactor(phoneNumber), opts)
}

// EnrollCall implements okta.FactorsClient.EnrollCall.
func (c *FactorsClient) EnrollCall(
	ctx context.Context, userID, phoneNumber string, opts *okta.EnrollFactorOptions,
) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewCallFactor(phoneNumber), opts)
}

// EnrollQuestion implements okta.FactorsClient.EnrollQuestion.
func (c *FactorsClient) EnrollQuestion(ctx context.Context, userID, question, answer string) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewQuestionFactor(question, answer), nil)
}

// EnrollGoogleTOTP implements okta.FactorsClient.EnrollGoogleTOTP.
func (c *FactorsClient) EnrollGoogleTOTP(ctx context.Context, userID string) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewTOTPFactor(okta.FactorProviderGoogle), nil)
}

// EnrollOktaTOTP implements okta.FactorsClient.EnrollOktaTOTP.
func (c *FactorsClient) EnrollOktaTOTP(ctx context.Context, userID string) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewTOTPFactor(okta.FactorProviderOkta), nil)
}

// EnrollOktaPush implements okta.FactorsClient.EnrollOktaPush.
func (c *FactorsClient) EnrollOktaPush(ctx context.Context, userID string) (*okta.Factor, error) {
	return c.Enroll(ctx, userID, okta.NewPushFactor(), nil)
}

// Activate implements okta.FactorsClient.Activate.
func (c *FactorsClient) Activate(ctx context.Context, userID, factorID, passCode string) (*okta.Factor, error) {
	if err := checkFactorIDs(userID, factorID); err != nil {
		return nil, err
	}

	request := &okta.VerifyFactorRequest{PassCode: passCode}

	resp, err := c.httpClient.Post(ctx, factorsPath(userID, escape(factorID), "lifecycle", "activate"), request)
	if err != nil {
		return nil, fmt.Errorf("activating factor: %w", err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}

// Resend implements okta.FactorsClient.Resend.
func (c *FactorsClient) Resend(ctx context.Context, userID, factorID string) (*okta.Factor, error) {
	if err := checkFactorIDs(userID, factorID); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, factorsPath(userID, escape(factorID), "resend"), nil)
	if err != nil {
		return nil, fmt.Errorf("resending factor challenge: %w", err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}

// Reset implements okta.FactorsClient.Reset.
func (c *FactorsClient) Reset(ctx context.Context, userID, factorID string) error {
	if err := checkFactorIDs(userID, factorID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, factorsPath(userID, escape(factorID)))
	if err != nil {
		return fmt.Errorf("resetting factor: %w", err)
	}

	return nil
}

// Verify implements okta.FactorsClient.Verify.
func (c *FactorsClient) Verify(
	ctx context.Context, userID, factorID string, req *okta.VerifyFactorRequest,
) (*okta.FactorVerification, error) {
	if err := checkFactorIDs(userID, factorID); err != nil {
		return nil, err
	}

	if req == nil {
		req = &okta.VerifyFactorRequest{}
	}

	resp, err := c.httpClient.Post(ctx, factorsPath(userID, escape(factorID), "verify"), req)
	if err != nil {
		return nil, fmt.Errorf("verifying factor: %w", err)
	}

	return decodeOne(resp, okta.FactorVerificationSchema, "factor verification")
}

// PollPushActivation implements okta.FactorsClient.PollPushActivation. pollURL is the
// "poll" link of a push enrollment.
func (c *FactorsClient) PollPushActivation(ctx context.Context, pollURL string) (*okta.Factor, error) {
	if pollURL == "" {
		return nil, okta.ErrPollURLRequired
	}

	resp, err := c.httpClient.Post(ctx, pollURL, nil)
	if err != nil {
		return nil, fmt.Errorf("polling push activation: %w", err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}

// PollPushVerification implements okta.FactorsClient.PollPushVerification. pollURL is
// the "poll" link of a push verification.
func (c *FactorsClient) PollPushVerification(ctx context.Context, pollURL string) (*okta.FactorVerification, error) {
	if pollURL == "" {
		return nil, okta.ErrPollURLRequired
	}

	resp, err := c.httpClient.Get(ctx, pollURL, nil)
	if err != nil {
		return nil, fmt.Errorf("polling push verification: %w", err)
	}

	return decodeOne(resp, okta.FactorVerificationSchema, "factor verification")
}

// ListOrgFactors implements okta.FactorsClient.ListOrgFactors.
func (c *FactorsClient) ListOrgFactors(ctx context.Context) ([]*okta.Factor, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathOrgFactors, nil)
	if err != nil {
		return nil, fmt.Errorf("listing org factors: %w", err)
	}

	return decodeMany(resp, okta.FactorSchema, "factor")
}

// ActivateOrgFactor implements okta.FactorsClient.ActivateOrgFactor.
func (c *FactorsClient) ActivateOrgFactor(ctx context.Context, factorID string) (*okta.Factor, error) {
	return c.orgFactorLifecycle(ctx, factorID, "activate")
}

// DeactivateOrgFactor implements okta.FactorsClient.DeactivateOrgFactor.
func (c *FactorsClient) DeactivateOrgFactor(ctx context.Context, factorID string) (*okta.Factor, error) {
	return c.orgFactorLifecycle(ctx, factorID, "deactivate")
}

func (c *FactorsClient) orgFactorLifecycle(ctx context.Context, factorID, operation string) (*okta.Factor, error) {
	if factorID == "" {
		return nil, okta.ErrFactorIDRequired
	}

	path := constants.APIPathOrgFactors + "/" + escape(factorID) + "/lifecycle/" + operation

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("running %s on org factor: %w", operation, err)
	}

	return decodeOne(resp, okta.FactorSchema, "factor")
}
