// Package codec converts between JSON documents and typed entity graphs.
//
// Each entity type declares a Schema: a table of fields with their expected types and a
// rename table for wire names such as "_links". Decoding walks the parsed document and
// builds entities field by field through typed setters, without reflection. Encoding is
// the inverse and omits fields that hold no value, which gives partial-update requests
// their sparse shape.
//
// Coercion is lenient. Unknown fields and null values are skipped, and a primitive of
// the wrong JSON type leaves the field at its zero value. Only malformed JSON, a scalar
// where an entity was required, and unparseable timestamps are errors.
//
// Basic usage:
//
//	type Profile struct{ FirstName string }
//	type User struct {
//		ID      string
//		Profile *Profile
//	}
//
//	var profileSchema = codec.NewSchema("Profile", nil,
//		codec.Str("firstName", func(p *Profile) *string { return &p.FirstName }),
//	)
//	var userSchema = codec.NewSchema("User", nil,
//		codec.Str("id", func(u *User) *string { return &u.ID }),
//		codec.Ref("profile", profileSchema, func(u *User) **Profile { return &u.Profile }),
//	)
//
//	user, err := codec.DecodeOne([]byte(`{"id":"u1","profile":{"firstName":"Gordon"}}`), userSchema)
package codec
