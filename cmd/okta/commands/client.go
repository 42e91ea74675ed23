package commands

import (
	"context"
	"fmt"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
	"github.com/spf13/viper"
)

// rateLimitWarningThreshold is the remaining-request count below which the CLI warns.
const rateLimitWarningThreshold = 10

// cliUserAgent is sent on every request made by the CLI.
var cliUserAgent = "okta-cli/dev"

// SetUserAgentVersion sets the version reported in the CLI User-Agent.
func SetUserAgentVersion(version string) {
	cliUserAgent = "okta-cli/" + version
}

// CreateClient builds an Okta client from the org URL and credential in the config file,
// environment (OKTA_ORG_URL, OKTA_API_TOKEN, OKTA_ACCESS_TOKEN) or flags.
func CreateClient(ctx context.Context) (okta.Client, error) {
	orgURL := viper.GetString("org_url")
	if orgURL == "" {
		return nil, constants.ErrNoOrgURL
	}

	apiToken := viper.GetString("api_token")
	accessToken := viper.GetString("access_token")

	if apiToken == "" && accessToken == "" {
		return nil, constants.ErrNoAPIToken
	}

	// An API token given on the command line wins over a stored access token.
	if apiToken != "" {
		accessToken = ""
	}

	logger, err := newCLILogger()
	if err != nil {
		return nil, err
	}

	adapter := NewZerologAdapter(logger)

	interceptors := okta.NewInterceptorChain()
	interceptors.AddResponseInterceptor(okta.RateLimitWarningInterceptor(adapter, rateLimitWarningThreshold))

	config := &okta.Config{
		OrgURL:       orgURL,
		APIToken:     apiToken,
		AccessToken:  accessToken,
		HTTPTimeout:  constants.DefaultHTTPTimeout,
		RetryMax:     constants.DefaultRetryMax,
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
		Debug:        viper.GetBool("verbose"),
		Logger:       adapter,
		UserAgent:    cliUserAgent,
		Interceptors: interceptors,
	}

	client, err := oktaclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
