package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Event is a system event from the events API.
type Event struct {
	EventID   string
	Published time.Time
	RequestID string
	SessionID string
	Action    *EventAction
	Actors    []*EventActor
	Targets   []*EventTarget
}

// EventAction describes what happened.
type EventAction struct {
	Message    string
	Categories []string
	ObjectType string
	RequestURI string
}

// EventActor is the user, client or app that caused an event.
type EventActor struct {
	ID          string
	DisplayName string
	Login       string
	ObjectType  string
	IPAddress   string
}

// EventTarget is an object an event acted upon.
type EventTarget struct {
	ID          string
	DisplayName string
	Login       string
	ObjectType  string
}

var (
	// EventActionSchema describes EventAction.
	EventActionSchema = codec.NewSchema("EventAction", nil,
		codec.Str("message", func(a *EventAction) *string { return &a.Message }),
		codec.Strings("categories", func(a *EventAction) *[]string { return &a.Categories }),
		codec.Str("objectType", func(a *EventAction) *string { return &a.ObjectType }),
		codec.Str("requestUri", func(a *EventAction) *string { return &a.RequestURI }),
	)

	// EventActorSchema describes EventActor.
	EventActorSchema = codec.NewSchema("EventActor", nil,
		codec.Str("id", func(a *EventActor) *string { return &a.ID }),
		codec.Str("displayName", func(a *EventActor) *string { return &a.DisplayName }),
		codec.Str("login", func(a *EventActor) *string { return &a.Login }),
		codec.Str("objectType", func(a *EventActor) *string { return &a.ObjectType }),
		codec.Str("ipAddress", func(a *EventActor) *string { return &a.IPAddress }),
	)

	// EventTargetSchema describes EventTarget.
	EventTargetSchema = codec.NewSchema("EventTarget", nil,
		codec.Str("id", func(t *EventTarget) *string { return &t.ID }),
		codec.Str("displayName", func(t *EventTarget) *string { return &t.DisplayName }),
		codec.Str("login", func(t *EventTarget) *string { return &t.Login }),
		codec.Str("objectType", func(t *EventTarget) *string { return &t.ObjectType }),
	)

	// EventSchema describes Event.
	EventSchema = codec.NewSchema("Event", nil,
		codec.Str("eventId", func(e *Event) *string { return &e.EventID }),
		codec.Time("published", func(e *Event) *time.Time { return &e.Published }),
		codec.Str("requestId", func(e *Event) *string { return &e.RequestID }),
		codec.Str("sessionId", func(e *Event) *string { return &e.SessionID }),
		codec.Ref("action", EventActionSchema, func(e *Event) **EventAction { return &e.Action }),
		codec.List("actors", EventActorSchema, func(e *Event) *[]*EventActor { return &e.Actors }),
		codec.List("targets", EventTargetSchema, func(e *Event) *[]*EventTarget { return &e.Targets }),
	)
)

// MarshalJSON implements json.Marshaler.
func (e *Event) MarshalJSON() ([]byte, error) { return codec.Marshal(e, EventSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (e *Event) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, EventSchema, e) }
