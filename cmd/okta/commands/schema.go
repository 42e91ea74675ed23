package commands

import (
	"fmt"
	"io"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// SchemaField describes one field of a registered entity.
type SchemaField struct {
	Name     string `json:"name"     yaml:"name"`
	WireName string `json:"wireName" yaml:"wireName"`
	Type     string `json:"type"     yaml:"type"`
	Entity   bool   `json:"entity"   yaml:"entity"`
}

// SchemaSummary is one line of 'okta schema list'.
type SchemaSummary struct {
	Name   string `json:"name"   yaml:"name"`
	Fields int    `json:"fields" yaml:"fields"`
}

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema",
		Aliases: []string{"schemas", "types"},
		Short:   "Inspect entity schemas",
		Long:    "List the entity types the client knows and show their fields, as used by 'okta get --as'",
	}

	cmd.AddCommand(newSchemaListCommand())
	cmd.AddCommand(newSchemaShowCommand())

	return cmd
}

func newSchemaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entity types",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := SchemaSummaries(okta.Schemas)

			return render(cmd.OutOrStdout(), summaries, func(w io.Writer) error {
				table := newTable(w, "Name", "Fields")

				for _, summary := range summaries {
					_ = table.Append(summary.Name, fmt.Sprint(summary.Fields))
				}

				return renderTable(table)
			})
		},
	}
}

func newSchemaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show the fields of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := DescribeSchema(okta.Schemas, args[0])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), fields, func(w io.Writer) error {
				table := newTable(w, "Field", "Wire Name", "Type")

				for _, field := range fields {
					_ = table.Append(field.Name, field.WireName, field.Type)
				}

				return renderTable(table)
			})
		},
	}
}

// SchemaSummaries lists every entity in registry in name order.
func SchemaSummaries(registry *codec.Registry) []SchemaSummary {
	names := registry.Names()
	out := make([]SchemaSummary, 0, len(names))

	for _, name := range names {
		desc, _ := registry.Lookup(name)
		out = append(out, SchemaSummary{Name: name, Fields: len(desc.Fields())})
	}

	return out
}

// DescribeSchema lists the fields of the entity registered under name.
func DescribeSchema(registry *codec.Registry, name string) ([]SchemaField, error) {
	desc, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s, see 'okta schema list'", ErrUnknownSchema, name)
	}

	locals := desc.Fields()
	out := make([]SchemaField, 0, len(locals))

	for _, local := range locals {
		field := SchemaField{Name: local, WireName: desc.Renames().Wire(local)}

		if typ, ok := desc.FieldType(local); ok {
			field.Type = typ.Name()
			field.Entity = typ.Kind() == codec.KindEntity
		} else if typ, ok := desc.MapValueType(local); ok {
			field.Type = "map of " + typ.Name()
			field.Entity = typ.Kind() == codec.KindEntity
		}

		out = append(out, field)
	}

	return out, nil
}
