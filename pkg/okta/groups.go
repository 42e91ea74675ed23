package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Group types.
const (
	GroupTypeOkta     = "OKTA_GROUP"
	GroupTypeApp      = "APP_GROUP"
	GroupTypeBuiltIn  = "BUILT_IN"
	ObjectClassOkta   = "okta:user_group"
	ObjectClassWindow = "okta:windows_security_principal"
)

// Group is an Okta user group.
type Group struct {
	ID                    string
	Type                  string
	ObjectClass           []string
	Created               time.Time
	LastUpdated           time.Time
	LastMembershipUpdated time.Time
	Profile               *GroupProfile
	Links                 Links
}

// GroupProfile holds the name and description of a group.
type GroupProfile struct {
	Name        string
	Description string
}

// NewGroup returns an Okta group with the given profile.
func NewGroup(name, description string) *Group {
	return &Group{
		Profile: &GroupProfile{Name: name, Description: description},
	}
}

var (
	// GroupProfileSchema describes GroupProfile.
	GroupProfileSchema = codec.NewSchema("GroupProfile", nil,
		codec.Str("name", func(p *GroupProfile) *string { return &p.Name }),
		codec.Str("description", func(p *GroupProfile) *string { return &p.Description }),
	)

	// GroupSchema describes Group.
	GroupSchema = codec.NewSchema("Group", wireRenames(),
		codec.Str("id", func(g *Group) *string { return &g.ID }),
		codec.Str("type", func(g *Group) *string { return &g.Type }),
		codec.Strings("objectClass", func(g *Group) *[]string { return &g.ObjectClass }),
		codec.Time("created", func(g *Group) *time.Time { return &g.Created }),
		codec.Time("lastUpdated", func(g *Group) *time.Time { return &g.LastUpdated }),
		codec.Time("lastMembershipUpdated", func(g *Group) *time.Time { return &g.LastMembershipUpdated }),
		codec.Ref("profile", GroupProfileSchema, func(g *Group) **GroupProfile { return &g.Profile }),
		linksField(func(g *Group) *Links { return &g.Links }),
	)
)

// MarshalJSON implements json.Marshaler.
func (g *Group) MarshalJSON() ([]byte, error) { return codec.Marshal(g, GroupSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (g *Group) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, GroupSchema, g) }
