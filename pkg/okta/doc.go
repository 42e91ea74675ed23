// Package okta provides types, interfaces, and helpers for working with the Okta
// management API.
//
// # Overview
//
// The okta package defines the domain entities (User, Group, Factor, Event, Session,
// AuthResult) with their codec schemas, and the interfaces of the resource clients
// (UsersClient, GroupsClient, FactorsClient, ...). A concrete implementation is provided
// by the oktaclient package, which wires configuration, transport and authentication.
//
// Getting a client
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
//	  cli, err := oktaclient.New(ctx, &okta.Config{
//	    OrgURL:   "https://dev-123456.okta.com",
//	    APIToken: "00abc...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Users().List(ctx, okta.NewListParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = page.Items
//	}
//
// # Pagination
//
// Okta collections are paged with a Link header whose rel="next" entry is an opaque
// cursor URL. A Pager holds the current page and is either HasMore or LastPage;
// Advance follows the next link verbatim and must not be called on the last page.
//
//	pager, err := cli.Users().Pager(ctx, okta.NewListParams().WithFilter(`status eq "ACTIVE"`))
//	if err != nil { /* handle error */ }
//	for {
//	  for _, u := range pager.Items() { _ = u }
//	  if !pager.HasMore() { break }
//	  if err := pager.Advance(ctx); err != nil { /* handle error */ }
//	}
//
// PaginationIterator and FetchAllPages are built on the same protocol.
//
// # Errors
//
// Non-2xx responses become *Error, carrying the Okta error code, summary and causes.
// IsNotFound, IsUnauthorized, IsForbidden, IsRateLimited and HasErrorCode branch on
// common cases.
//
// # Wire format
//
// Entities encode and decode through the codec package: unknown fields are ignored,
// "_links" and "_embedded" load into Links and Embedded, and encoding omits empty fields
// so that partial updates only send what was set.
package okta
