package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/sink"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event", "ev"},
		Short:   "Read system events",
		Long:    "List system events and export them to a NATS server",
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsExportCommand())

	return cmd
}

func newEventsListCommand() *cobra.Command {
	var (
		opts  = &listOptions{}
		since string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List system events",
		Long: `List system events, oldest first.

Examples:
  okta events list --since 2024-01-02
  okta events list --filter 'action.objectType eq "core.user_auth.login_failed"'
  okta events list --all --where 'any(actors, .login == "jane@example.com")'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseTimeFlag(since)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			params := okta.NewListParams().WithLimit(opts.limit).WithFilter(opts.filter).WithStartDate(startDate)

			pager, err := client.Events().Pager(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			result, err := listEntities(ctx, opts, pager, okta.EventSchema.Encode)
			if err != nil {
				return err
			}

			return outputEvents(cmd.OutOrStdout(), result.items, result.more)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&opts.allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "stop after this many pages when --all is set (0 for no limit)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "server-side filter expression")
	cmd.Flags().StringVar(&opts.where, "where", "", "client-side expression over the event")
	cmd.Flags().StringVar(&since, "since", "", "only events published after this time (RFC3339 or YYYY-MM-DD)")

	return cmd
}

func newEventsExportCommand() *cobra.Command {
	var (
		natsURL   string
		subject   string
		creds     string
		natsToken string
		since     string
		filter    string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events to NATS",
		Long: `Publish every event of the feed to NATS, one JSON message per event.

Events are published on <subject>.<action object type>, for example
okta.events.core.user_auth.login_success, with the event ID as the
Nats-Msg-Id header so JetStream can drop duplicates on a rerun.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if natsURL == "" {
				natsURL = viper.GetString("nats_url")
			}

			if natsURL == "" {
				return constants.ErrNATSURLRequired
			}

			if subject == "" {
				subject = viper.GetString("nats_subject")
			}

			startDate, err := parseTimeFlag(since)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			logger, err := newCLILogger()
			if err != nil {
				return err
			}

			eventSink, err := sink.Connect(&sink.NATSConfig{
				URL:             natsURL,
				Subject:         subject,
				CredentialsFile: creds,
				Token:           natsToken,
				Timeout:         constants.NATSConnectTimeout,
			}, NewZerologAdapter(logger))
			if err != nil {
				return err
			}
			defer eventSink.Close()

			params := okta.NewListParams().WithLimit(limit).WithFilter(filter).WithStartDate(startDate)

			pager, err := client.Events().Pager(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			count, err := eventSink.Export(ctx, pager)
			if err != nil {
				return fmt.Errorf("exported %d events before failing: %w", count, err)
			}

			if subject == "" {
				subject = constants.DefaultEventSubject
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s.>\n", count, strings.TrimSuffix(subject, "."))

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (or OKTA_NATS_URL)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject prefix (default "+constants.DefaultEventSubject+")")
	cmd.Flags().StringVar(&creds, "nats-creds", "", "NATS credentials file")
	cmd.Flags().StringVar(&natsToken, "nats-token", "", "NATS auth token")
	cmd.Flags().StringVar(&since, "since", "", "only events published after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter, "filter", "", "server-side filter expression")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "events per page")

	return cmd
}

func outputEvents(w io.Writer, events []*okta.Event, more bool) error {
	return render(w, events, func(w io.Writer) error {
		if len(events) == 0 {
			_, _ = io.WriteString(w, "No events found\n")

			return nil
		}

		table := newTable(w, "Published", "Action", "Actor", "Target", "Message")

		for _, event := range events {
			action, message := constants.NotAvailable, ""
			if event.Action != nil {
				action = event.Action.ObjectType
				message = truncate(event.Action.Message, constants.StringTruncationLength)
			}

			_ = table.Append(
				formatTime(event.Published),
				action,
				formatActor(event.Actors),
				formatTarget(event.Targets),
				valueOrNA(message),
			)
		}

		err := renderTable(table)
		printMoreHint(w, more)

		return err
	})
}

func formatActor(actors []*okta.EventActor) string {
	for _, actor := range actors {
		switch {
		case actor.Login != "":
			return actor.Login
		case actor.DisplayName != "":
			return actor.DisplayName
		}
	}

	return constants.NotAvailable
}

func formatTarget(targets []*okta.EventTarget) string {
	names := make([]string, 0, len(targets))

	for _, target := range targets {
		switch {
		case target.Login != "":
			names = append(names, target.Login)
		case target.DisplayName != "":
			names = append(names, target.DisplayName)
		case target.ID != "":
			names = append(names, target.ID)
		}
	}

	if len(names) == 0 {
		return constants.NotAvailable
	}

	return truncate(strings.Join(names, ", "), constants.StringTruncationLength)
}
