package commands

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/auth"
	"github.com/mdwallick/okta-sdk-go/internal/client"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfigureCommand creates the configure command.
func NewConfigureCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:     "configure",
		Aliases: []string{"login"},
		Short:   "Store the org URL and API token",
		Long: `Prompt for the Okta org URL and an API token, check them against the
org and store them in the configuration file.

The token can be created in the Admin Console under Security > API > Tokens.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.ErrOrStderr()

			orgURL := viper.GetString("org_url")
			if !cmd.Flags().Changed("org-url") {
				orgURL = promptLine(in, out, "Okta org URL", orgURL)
			}

			if orgURL == "" {
				return ErrOrgURLRequired
			}

			orgURL = oktaclient.NormalizeOrgURL(orgURL)

			token := ""
			if cmd.Flags().Changed("token") {
				token = viper.GetString("api_token")
			}

			if token == "" {
				var err error

				token, err = promptSecret(in, out, "API token")
				if err != nil {
					return err
				}
			}

			if token == "" {
				return ErrTokenRequired
			}

			tokenManager := auth.NewConfigTokenManager(auth.NewAPITokenManager(token), NewConfigPersister(""), orgURL)

			if !skipVerify {
				who, err := verifyToken(cmd.Context(), orgURL, tokenManager)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(out, "Authenticated as %s\n", who)
			}

			err := tokenManager.SaveToken(token, time.Time{})
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved for %s\n", orgURL)

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store the token without checking it")

	return cmd
}

// verifyToken fetches the user the token belongs to.
func verifyToken(ctx context.Context, orgURL string, tokenManager auth.TokenManager) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	c, err := client.NewWithTokenManager(&okta.Config{OrgURL: orgURL, UserAgent: cliUserAgent}, tokenManager)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}

	me, err := c.Users().Get(ctx, "me")
	if err != nil {
		return "", fmt.Errorf("failed to verify API token: %w", err)
	}

	if me.Profile != nil && me.Profile.Login != "" {
		return me.Profile.Login, nil
	}

	return me.ID, nil
}
