// Package oktaclient provides the primary entry point for constructing an
// Okta management API client that implements the okta.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the okta package. Most applications
// should import oktaclient to build a client, then use the returned okta.Client
// to access resource-specific clients, for example Users(), Groups(), Factors().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mdwallick/okta-sdk-go/pkg/okta"
//	  "github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With an API token created in the Okta admin console:
//	  cli, err := oktaclient.New(ctx, &okta.Config{
//	    OrgURL:   "dev-123456.okta.com",
//	    APIToken: "00abc...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an OAuth 2.0 access token you already have:
//	  cli, err = oktaclient.NewWithAccessToken(ctx, "https://dev-123456.okta.com", "eyJhbGciOi...")
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Users().List(ctx, okta.NewListParams().WithLimit(25))
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Org URL
//
// The org URL may be given without a scheme, in which case https:// is assumed.
// A trailing slash is removed. Next links returned by Okta are absolute and are
// followed as-is.
//
// # Helpers
//
// The package also provides the convenience constructors NewWithAPIToken and
// NewWithAccessToken that wrap New with the appropriate configuration.
package oktaclient
