// Package sink forwards Okta events to external systems.
package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is the subject events are published under.
const DefaultSubjectPrefix = constants.DefaultEventSubject

// DefaultFlushTimeout bounds Flush when the context has no deadline.
const DefaultFlushTimeout = constants.NATSFlushTimeout

// Header names set on every published message.
const (
	HeaderEventID   = "Okta-Event-Id"
	HeaderPublished = "Okta-Published"
	// HeaderMsgID lets a JetStream stream drop duplicates when an export is rerun.
	HeaderMsgID = "Nats-Msg-Id"
)

// Static errors for err113 compliance.
var (
	ErrNATSURLRequired = constants.ErrNATSURLRequired
	ErrSinkClosed      = errors.New("event sink is closed")
)

// MsgPublisher is the part of *nats.Conn the sink uses.
type MsgPublisher interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Logger is the logging interface of the sink.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// NATSConfig configures a NATS connection.
type NATSConfig struct {
	// URL is a NATS server URL or a comma-separated list of them.
	URL string
	// Subject prefix; DefaultSubjectPrefix when empty.
	Subject string
	// ClientName is reported to the server.
	ClientName string
	// CredentialsFile is an optional NATS .creds file.
	CredentialsFile string
	// Token is an optional auth token.
	Token   string
	Timeout time.Duration
}

// EventSink publishes events as JSON messages, one per event, on
// <subject>.<event object type>.
type EventSink struct {
	conn    MsgPublisher
	subject string
	logger  Logger
	closed  bool
}

// Connect dials NATS and returns a sink over the connection.
func Connect(config *NATSConfig, logger Logger) (*EventSink, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := []nats.Option{
		nats.Name(clientName(config)),
		nats.MaxReconnects(-1),
	}

	if config.Timeout > 0 {
		opts = append(opts, nats.Timeout(config.Timeout))
	}

	if config.CredentialsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredentialsFile))
	}

	if config.Token != "" {
		opts = append(opts, nats.Token(config.Token))
	}

	if logger != nil {
		opts = append(opts,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("NATS disconnected", map[string]interface{}{"error": fmt.Sprint(err)})
			}),
			nats.ReconnectHandler(func(conn *nats.Conn) {
				logger.Debug("NATS reconnected", map[string]interface{}{"url": conn.ConnectedUrl()})
			}),
		)
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return New(conn, config.Subject, logger), nil
}

func clientName(config *NATSConfig) string {
	if config.ClientName != "" {
		return config.ClientName
	}

	return "okta-events-export"
}

// New creates a sink over an existing publisher.
func New(conn MsgPublisher, subject string, logger Logger) *EventSink {
	if subject == "" {
		subject = DefaultSubjectPrefix
	}

	return &EventSink{
		conn:    conn,
		subject: strings.TrimSuffix(subject, "."),
		logger:  logger,
	}
}

// SubjectFor returns the subject an event is published on.
func (s *EventSink) SubjectFor(event *okta.Event) string {
	objectType := ""
	if event.Action != nil {
		objectType = event.Action.ObjectType
	}

	return s.subject + "." + subjectToken(objectType)
}

// subjectToken makes objectType safe to use as subject tokens. Dots are kept so
// subscribers can use wildcards such as okta.events.core.user_auth.>.
func subjectToken(objectType string) string {
	if objectType == "" {
		return "unknown"
	}

	tokens := strings.Split(objectType, ".")
	out := make([]string, 0, len(tokens))

	for _, token := range tokens {
		token = strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\r', '\n', '*', '>':
				return '_'
			}

			return r
		}, token)

		if token != "" {
			out = append(out, token)
		}
	}

	if len(out) == 0 {
		return "unknown"
	}

	return strings.Join(out, ".")
}

// Publish sends one event.
func (s *EventSink) Publish(event *okta.Event) error {
	if s.closed {
		return ErrSinkClosed
	}

	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", event.EventID, err)
	}

	msg := nats.NewMsg(s.SubjectFor(event))
	msg.Data = data

	if event.EventID != "" {
		msg.Header.Set(HeaderEventID, event.EventID)
		msg.Header.Set(HeaderMsgID, event.EventID)
	}

	if !event.Published.IsZero() {
		msg.Header.Set(HeaderPublished, event.Published.UTC().Format(time.RFC3339))
	}

	err = s.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing event %s: %w", event.EventID, err)
	}

	return nil
}

// PublishAll sends events in order and flushes. It stops at the first failure and
// returns the number of events sent before it.
func (s *EventSink) PublishAll(ctx context.Context, events []*okta.Event) (int, error) {
	for i, event := range events {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("publishing events: %w", err)
		}

		if err := s.Publish(event); err != nil {
			return i, err
		}
	}

	if err := s.Flush(ctx); err != nil {
		return len(events), err
	}

	if s.logger != nil {
		s.logger.Debug("Published events", map[string]interface{}{
			"count":   len(events),
			"subject": s.subject,
		})
	}

	return len(events), nil
}

// Export walks every page of pager, publishing each page as it arrives. It returns
// the total number of events published.
func (s *EventSink) Export(ctx context.Context, pager *okta.Pager[okta.Event]) (int, error) {
	total := 0

	for {
		sent, err := s.PublishAll(ctx, pager.Items())
		total += sent

		if err != nil {
			return total, err
		}

		if !pager.HasMore() {
			return total, nil
		}

		if err := pager.Advance(ctx); err != nil {
			return total, fmt.Errorf("exporting events: %w", err)
		}
	}
}

// Flush waits until the server has processed everything published so far.
func (s *EventSink) Flush(ctx context.Context) error {
	if s.closed {
		return ErrSinkClosed
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, DefaultFlushTimeout)
		defer cancel()
	}

	err := s.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("flushing NATS connection: %w", err)
	}

	return nil
}

// Close closes the underlying connection. Close is idempotent.
func (s *EventSink) Close() {
	if s.closed {
		return
	}

	s.closed = true
	s.conn.Close()
}
