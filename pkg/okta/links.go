package okta

import (
	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Link is a HAL link from a resource's "_links" object.
type Link struct {
	Name      string
	Href      string
	Type      string
	Method    string
	Templated *bool
	Hints     *LinkHints
}

// LinkHints lists the HTTP methods a link accepts.
type LinkHints struct {
	Allow []string
}

// Links maps a relation name to its links. Okta sends most relations as a single object
// and some (for example "resend") as an array; both load as a slice.
type Links map[string][]*Link

// Get returns the first link for rel, or nil.
func (l Links) Get(rel string) *Link {
	if links := l[rel]; len(links) > 0 {
		return links[0]
	}

	return nil
}

// Href returns the href of the first link for rel.
func (l Links) Href(rel string) string {
	if link := l.Get(rel); link != nil {
		return link.Href
	}

	return ""
}

// Has reports whether rel is present.
func (l Links) Has(rel string) bool {
	return len(l[rel]) > 0
}

var (
	// LinkHintsSchema describes LinkHints.
	LinkHintsSchema = codec.NewSchema("LinkHints", nil,
		codec.Strings("allow", func(h *LinkHints) *[]string { return &h.Allow }),
	)

	// LinkSchema describes Link.
	LinkSchema = codec.NewSchema("Link", nil,
		codec.Str("name", func(l *Link) *string { return &l.Name }),
		codec.Str("href", func(l *Link) *string { return &l.Href }),
		codec.Str("type", func(l *Link) *string { return &l.Type }),
		codec.Str("method", func(l *Link) *string { return &l.Method }),
		codec.Bool("templated", func(l *Link) **bool { return &l.Templated }),
		codec.Ref("hints", LinkHintsSchema, func(l *Link) **LinkHints { return &l.Hints }),
	)
)

// MarshalJSON implements json.Marshaler.
func (l *Link) MarshalJSON() ([]byte, error) { return codec.Marshal(l, LinkSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (l *Link) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, LinkSchema, l) }

// wireRenames are the reserved-prefix structural fields shared by all resources.
func wireRenames() map[string]string {
	return map[string]string{
		"_links":    "links",
		"_embedded": "embedded",
	}
}

// linksField binds the "_links" object of T.
func linksField[T any](at func(*T) *Links) codec.Field[T] {
	return codec.DictList("links", LinkSchema, at)
}
