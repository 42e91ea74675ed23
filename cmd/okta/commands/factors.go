package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// Factor type names accepted by --type.
const (
	factorEmail      = "email"
	factorSMS        = "sms"
	factorCall       = "call"
	factorQuestion   = "question"
	factorGoogleTOTP = "google-totp"
	factorOktaTOTP   = "okta-totp"
	factorPush       = "push"
)

var enrollableFactors = []string{
	factorEmail, factorSMS, factorCall, factorQuestion, factorGoogleTOTP, factorOktaTOTP, factorPush,
}

// NewFactorsCommand creates the factors command group.
func NewFactorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "factors",
		Aliases: []string{"factor", "mfa"},
		Short:   "Manage MFA factors",
		Long:    "Enroll, activate, verify and reset the multifactor authentication factors of a user",
	}

	cmd.AddCommand(newFactorsListCommand())
	cmd.AddCommand(newFactorsCatalogCommand())
	cmd.AddCommand(newFactorsQuestionsCommand())
	cmd.AddCommand(newFactorsEnrollCommand())
	cmd.AddCommand(newFactorsActivateCommand())
	cmd.AddCommand(newFactorsVerifyCommand())
	cmd.AddCommand(newFactorsResetCommand())

	return cmd
}

func newFactorsListCommand() *cobra.Command {
	var org bool

	cmd := &cobra.Command{
		Use:   "list [USER_ID]",
		Short: "List enrolled factors",
		Long:  "List the factors a user has enrolled, or the factors configured for the org with --org",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !org && len(args) == 0 {
				return fmt.Errorf("%w: USER_ID or --org", okta.ErrUserIDRequired)
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			var factors []*okta.Factor
			if org {
				factors, err = client.Factors().ListOrgFactors(ctx)
			} else {
				factors, err = client.Factors().List(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to list factors: %w", err)
			}

			return outputFactors(cmd.OutOrStdout(), factors)
		},
	}

	cmd.Flags().BoolVar(&org, "org", false, "list the org-level factor configuration")

	return cmd
}

func newFactorsCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog USER_ID",
		Short: "List the factors a user may enroll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entries, err := client.Factors().Catalog(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get factor catalog: %w", err)
			}

			return render(cmd.OutOrStdout(), entries, func(w io.Writer) error {
				table := newTable(w, "Type", "Provider", "Enrollment", "Status")

				for _, entry := range entries {
					_ = table.Append(entry.FactorType, entry.Provider, formatStatus(entry.Enrollment), formatStatus(entry.Status))
				}

				return renderTable(table)
			})
		},
	}
}

func newFactorsQuestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "questions USER_ID",
		Short: "List the security questions available to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			questions, err := client.Factors().Questions(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list security questions: %w", err)
			}

			return render(cmd.OutOrStdout(), questions, func(w io.Writer) error {
				table := newTable(w, "Question", "Text")

				for _, question := range questions {
					_ = table.Append(question.Question, question.QuestionText)
				}

				return renderTable(table)
			})
		},
	}
}

type enrollFlags struct {
	factorType  string
	email       string
	phone       string
	question    string
	answer      string
	updatePhone bool
	wait        bool
}

func newFactorsEnrollCommand() *cobra.Command {
	flags := &enrollFlags{}

	cmd := &cobra.Command{
		Use:   "enroll USER_ID",
		Short: "Enroll a factor",
		Long: `Enroll a factor for a user. Types: ` + strings.Join(enrollableFactors, ", ") + `.

SMS, call and email factors then need 'okta factors activate' with the code sent to
the user. Push enrollment prints the QR code link; --wait polls until the user scans it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			factor, err := enrollFactor(ctx, client.Factors(), args[0], flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			err = outputEnrollment(out, factor)
			if err != nil {
				return err
			}

			if !flags.wait || factor.FactorType != okta.FactorTypePush || factor.Status == okta.FactorStatusActive {
				return nil
			}

			active, err := waitForPushActivation(ctx, client.Factors(), factor.Links.Href("poll"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Factor %s is %s\n", active.ID, formatStatus(active.Status))

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.factorType, "type", "", "factor type ("+strings.Join(enrollableFactors, ", ")+")")
	cmd.Flags().StringVar(&flags.email, "email", "", "email address for the email factor")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "phone number for the sms and call factors, e.g. +1-555-415-1337")
	cmd.Flags().StringVar(&flags.question, "question", "", "security question key, see 'okta factors questions'")
	cmd.Flags().StringVar(&flags.answer, "answer", "", "answer to the security question")
	cmd.Flags().BoolVar(&flags.updatePhone, "update-phone", false, "replace the phone number of an existing enrollment")
	cmd.Flags().BoolVar(&flags.wait, "wait", false, "wait for a push enrollment to be activated")

	return cmd
}

func enrollFactor(ctx context.Context, factors okta.FactorsClient, userID string, flags *enrollFlags) (*okta.Factor, error) {
	var (
		factor *okta.Factor
		err    error
	)

	phoneOpts := &okta.EnrollFactorOptions{UpdatePhone: flags.updatePhone}

	switch strings.ToLower(flags.factorType) {
	case "":
		return nil, constants.ErrFactorTypeRequired
	case factorEmail:
		factor, err = factors.EnrollEmail(ctx, userID, flags.email)
	case factorSMS:
		factor, err = factors.EnrollSMS(ctx, userID, flags.phone, phoneOpts)
	case factorCall:
		factor, err = factors.EnrollCall(ctx, userID, flags.phone, phoneOpts)
	case factorQuestion:
		factor, err = factors.EnrollQuestion(ctx, userID, flags.question, flags.answer)
	case factorGoogleTOTP:
		factor, err = factors.EnrollGoogleTOTP(ctx, userID)
	case factorOktaTOTP:
		factor, err = factors.EnrollOktaTOTP(ctx, userID)
	case factorPush:
		factor, err = factors.EnrollOktaPush(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedFactor, flags.factorType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to enroll factor: %w", err)
	}

	return factor, nil
}

func newFactorsActivateCommand() *cobra.Command {
	var passCode string

	cmd := &cobra.Command{
		Use:   "activate USER_ID FACTOR_ID",
		Short: "Activate an enrolled factor",
		Long:  "Activate a factor with the code sent by SMS, call or email, or the current TOTP code",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if passCode == "" {
				return constants.ErrPassCodeRequired
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			factor, err := client.Factors().Activate(ctx, args[0], args[1], passCode)
			if err != nil {
				return fmt.Errorf("failed to activate factor: %w", err)
			}

			return render(cmd.OutOrStdout(), factor, func(w io.Writer) error {
				_, _ = fmt.Fprintf(w, "Factor %s is %s\n", factor.ID, formatStatus(factor.Status))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&passCode, "passcode", "", "one-time code")

	return cmd
}

func newFactorsVerifyCommand() *cobra.Command {
	var (
		passCode string
		answer   string
		prompt   bool
		wait     bool
	)

	cmd := &cobra.Command{
		Use:   "verify USER_ID FACTOR_ID",
		Short: "Verify a factor",
		Long: `Verify a factor with a one-time code or security answer.

A push factor is verified by sending a challenge to the device; --wait polls
until the user approves or rejects it.`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt {
				code, err := promptSecret(bufio.NewReader(cmd.InOrStdin()), cmd.ErrOrStderr(), "Code")
				if err != nil {
					return err
				}

				passCode = code
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			verification, err := client.Factors().Verify(ctx, args[0], args[1], &okta.VerifyFactorRequest{
				PassCode: passCode,
				Answer:   answer,
			})
			if err != nil {
				return fmt.Errorf("failed to verify factor: %w", err)
			}

			if wait && verification.FactorResult == okta.FactorResultWaiting {
				verification, err = waitForPushVerification(ctx, client.Factors(), verification.Links.Href("poll"), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			return render(cmd.OutOrStdout(), verification, func(w io.Writer) error {
				_, _ = fmt.Fprintf(w, "Result: %s\n", formatStatus(verification.FactorResult))

				if verification.FactorResultMessage != "" {
					_, _ = fmt.Fprintf(w, "Message: %s\n", verification.FactorResultMessage)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&passCode, "passcode", "", "one-time code")
	cmd.Flags().StringVar(&answer, "answer", "", "security question answer")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "prompt for the code")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for a push challenge to be answered")

	return cmd
}

func newFactorsResetCommand() *cobra.Command {
	var (
		force bool
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "reset USER_ID [FACTOR_ID]",
		Short: "Reset a factor",
		Long:  "Unenroll one factor of a user, or every factor with --all",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) < 2 { //nolint:mnd
				return fmt.Errorf("%w: FACTOR_ID or --all", okta.ErrFactorIDRequired)
			}

			target := "all factors"
			if !all {
				target = "factor " + args[1]
			}

			if !confirm(cmd, fmt.Sprintf("Really reset %s of user '%s'?", target, args[0]), force) {
				return nil
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if all {
				err = client.Users().ResetFactors(ctx, args[0])
			} else {
				err = client.Factors().Reset(ctx, args[0], args[1])
			}

			if err != nil {
				return fmt.Errorf("failed to reset factor: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset %s of user %s\n", target, args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reset without confirmation")
	cmd.Flags().BoolVar(&all, "all", false, "reset every factor of the user")

	return cmd
}

// waitForPushActivation polls a push enrollment until the device is registered.
func waitForPushActivation(ctx context.Context, factors okta.FactorsClient, pollURL string, progress io.Writer) (*okta.Factor, error) {
	if pollURL == "" {
		return nil, ErrPushLinkMissing
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultPollTimeout)
	defer cancel()

	_, _ = io.WriteString(progress, "Waiting for the device to scan the QR code...\n")

	for {
		factor, err := factors.PollPushActivation(ctx, pollURL)
		if err != nil {
			return nil, fmt.Errorf("failed to poll push activation: %w", err)
		}

		if factor.Status == okta.FactorStatusActive {
			return factor, nil
		}

		if activation := factor.Activation(); activation != nil && isFinalPushResult(activation.FactorResult) {
			return nil, fmt.Errorf("%w: %s", okta.ErrUnexpectedPollResult, activation.FactorResult)
		}

		err = sleepContext(ctx, constants.DefaultPollInterval)
		if err != nil {
			return nil, okta.ErrPollTimedOut
		}
	}
}

// waitForPushVerification polls a push challenge until it is answered.
func waitForPushVerification(
	ctx context.Context, factors okta.FactorsClient, pollURL string, progress io.Writer,
) (*okta.FactorVerification, error) {
	if pollURL == "" {
		return nil, ErrPushLinkMissing
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultPollTimeout)
	defer cancel()

	_, _ = io.WriteString(progress, "Waiting for the push notification to be answered...\n")

	for {
		verification, err := factors.PollPushVerification(ctx, pollURL)
		if err != nil {
			return nil, fmt.Errorf("failed to poll push verification: %w", err)
		}

		if verification.FactorResult != okta.FactorResultWaiting {
			return verification, nil
		}

		err = sleepContext(ctx, constants.DefaultPollInterval)
		if err != nil {
			return nil, okta.ErrPollTimedOut
		}
	}
}

// isFinalPushResult reports a push activation that ended without succeeding.
func isFinalPushResult(result string) bool {
	return result == okta.FactorResultTimeout || result == okta.FactorResultRejected
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func outputFactors(w io.Writer, factors []*okta.Factor) error {
	return render(w, factors, func(w io.Writer) error {
		if len(factors) == 0 {
			_, _ = io.WriteString(w, "No factors found\n")

			return nil
		}

		table := newTable(w, "ID", "Type", "Provider", "Status", "Detail", "Created")

		for _, factor := range factors {
			_ = table.Append(
				valueOrNA(factor.ID),
				factor.FactorType,
				factor.Provider,
				formatStatus(factor.Status),
				valueOrNA(factorDetail(factor)),
				formatTime(factor.Created),
			)
		}

		return renderTable(table)
	})
}

func outputEnrollment(w io.Writer, factor *okta.Factor) error {
	return render(w, factor, func(w io.Writer) error {
		table := newTable(w, "Property", "Value")
		_ = table.Append("ID", factor.ID)
		_ = table.Append("Type", factor.FactorType)
		_ = table.Append("Provider", factor.Provider)
		_ = table.Append("Status", formatStatus(factor.Status))

		if detail := factorDetail(factor); detail != "" {
			_ = table.Append("Detail", detail)
		}

		if activation := factor.Activation(); activation != nil {
			if activation.SharedSecret != "" {
				_ = table.Append("Shared Secret", activation.SharedSecret)
			}

			if qr := activation.QRCodeHref(); qr != "" {
				_ = table.Append("QR Code", qr)
			}

			if !activation.ExpiresAt.IsZero() {
				_ = table.Append("Activation Expires", formatTime(activation.ExpiresAt))
			}
		}

		return renderTable(table)
	})
}

func factorDetail(factor *okta.Factor) string {
	profile := factor.Profile
	if profile == nil {
		return ""
	}

	switch factor.FactorType {
	case okta.FactorTypeEmail:
		return profile.Email
	case okta.FactorTypeSMS, okta.FactorTypeCall:
		return profile.PhoneNumber
	case okta.FactorTypeQuestion:
		return profile.QuestionText
	case okta.FactorTypePush:
		return joinNonEmpty(" ", profile.Name, profile.Platform)
	default:
		return profile.CredentialID
	}
}
