package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the raw get command.
func NewGetCommand() *cobra.Command {
	var (
		as     string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "GET any API path and decode it",
		Long: `Issue a GET request against the org and decode the response through the
entity registry. With --as the body is decoded as that entity type (see
'okta schema list'); without it the body is printed as plain JSON.

Examples:
  okta get /api/v1/users/me --as User
  okta get /api/v1/groups --as Group --param limit=5
  okta get /api/v1/org/factors --as Factor -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			if as != "" {
				if _, ok := okta.Schemas.Lookup(as); !ok {
					return fmt.Errorf("%w: %s, see 'okta schema list'", ErrUnknownSchema, as)
				}
			}

			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			body, next, err := client.GetRaw(ctx, path, query.ToValues())
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", path, err)
			}

			value, err := okta.Schemas.DecodeNamed(body, as)
			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			// Tables need a known shape, so the table format prints JSON too.
			err = render(cmd.OutOrStdout(), value, func(w io.Writer) error {
				return printJSON(w, value)
			})
			if err != nil {
				return err
			}

			if next != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Next page: %s\n", next)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "entity type to decode the response as")
	cmd.Flags().StringArrayVar(&params, "param", nil, "query parameter KEY=VALUE (repeatable)")

	return cmd
}
