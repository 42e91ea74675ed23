package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group", "g"},
		Short:   "Manage groups",
		Long:    "List, create and manage Okta groups and their members",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsUpdateCommand())
	cmd.AddCommand(newGroupsDeleteCommand())
	cmd.AddCommand(newGroupsMembersCommand())
	cmd.AddCommand(newGroupsMembershipCommand("add-user", "Add a user to a group", true))
	cmd.AddCommand(newGroupsMembershipCommand("remove-user", "Remove a user from a group", false))

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long: `List groups with optional filtering.

Examples:
  okta groups list --query Eng
  okta groups list --filter 'type eq "OKTA_GROUP"'
  okta groups list --all --where 'hasText(profile.description, "contractor")'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			pager, err := client.Groups().Pager(ctx, opts.params())
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			result, err := listEntities(ctx, opts, pager, okta.GroupSchema.Encode)
			if err != nil {
				return err
			}

			return outputGroups(cmd.OutOrStdout(), result.items, result.more)
		},
	}

	addListFlags(cmd, opts, false)

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get group details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			return outputGroup(cmd.OutOrStdout(), group)
		},
	}
}

func newGroupsCreateCommand() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return constants.ErrGroupNameRequired
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Create(ctx, okta.NewGroup(name, description))
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}

			return outputGroup(cmd.OutOrStdout(), group)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")

	return cmd
}

func newGroupsUpdateCommand() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a group profile",
		Long:  "Replace the name and description of an Okta group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return constants.ErrGroupNameRequired
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Update(ctx, args[0], okta.NewGroup(name, description))
			if err != nil {
				return fmt.Errorf("failed to update group: %w", err)
			}

			return outputGroup(cmd.OutOrStdout(), group)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")

	return cmd
}

func newGroupsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, fmt.Sprintf("Really delete group '%s'?", args[0]), force) {
				return nil
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Groups().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete group: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted group %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}

func newGroupsMembersCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "members ID",
		Aliases: []string{"users"},
		Short:   "List the members of a group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			pager, err := client.Groups().UsersPager(ctx, args[0], okta.NewListParams().WithLimit(opts.limit))
			if err != nil {
				return fmt.Errorf("failed to list group members: %w", err)
			}

			result, err := listEntities(ctx, opts, pager, okta.UserSchema.Encode)
			if err != nil {
				return err
			}

			return outputUsers(cmd.OutOrStdout(), result.items, result.more)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&opts.allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "stop after this many pages when --all is set (0 for no limit)")
	cmd.Flags().StringVar(&opts.where, "where", "", "client-side expression over the user")

	return cmd
}

func newGroupsMembershipCommand(use, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP_ID USER_ID",
		Short: short,
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, userID := args[0], args[1]
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if add {
				err = client.Groups().AddUser(ctx, groupID, userID)
				if err != nil {
					return fmt.Errorf("failed to add user to group: %w", err)
				}

				_, _ = fmt.Fprintf(out, "Added user %s to group %s\n", userID, groupID)

				return nil
			}

			err = client.Groups().RemoveUser(ctx, groupID, userID)
			if err != nil {
				return fmt.Errorf("failed to remove user from group: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Removed user %s from group %s\n", userID, groupID)

			return nil
		},
	}
}

func outputGroups(w io.Writer, groups []*okta.Group, more bool) error {
	return render(w, groups, func(w io.Writer) error {
		if len(groups) == 0 {
			_, _ = io.WriteString(w, "No groups found\n")

			return nil
		}

		table := newTable(w, "ID", "Name", "Type", "Description", "Last Membership Update")

		for _, group := range groups {
			name, description := "", ""
			if group.Profile != nil {
				name = group.Profile.Name
				description = truncate(group.Profile.Description, constants.StringTruncationLength)
			}

			_ = table.Append(
				group.ID,
				valueOrNA(name),
				formatStatus(group.Type),
				valueOrNA(description),
				formatTime(group.LastMembershipUpdated),
			)
		}

		err := renderTable(table)
		printMoreHint(w, more)

		return err
	})
}

func outputGroup(w io.Writer, group *okta.Group) error {
	return render(w, group, func(w io.Writer) error {
		table := newTable(w, "Property", "Value")
		_ = table.Append("ID", group.ID)

		if group.Profile != nil {
			_ = table.Append("Name", valueOrNA(group.Profile.Name))
			_ = table.Append("Description", valueOrNA(group.Profile.Description))
		}

		_ = table.Append("Type", formatStatus(group.Type))
		_ = table.Append("Object Class", valueOrNA(strings.Join(group.ObjectClass, ", ")))
		_ = table.Append("Created", formatTime(group.Created))
		_ = table.Append("Last Updated", formatTime(group.LastUpdated))
		_ = table.Append("Last Membership Update", formatTime(group.LastMembershipUpdated))

		return renderTable(table)
	})
}
