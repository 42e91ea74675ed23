package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage users",
		Long:    "List, create and manage Okta users and their lifecycle",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersDeleteCommand())
	cmd.AddCommand(newUsersActivateCommand())
	cmd.AddCommand(newUsersDeactivateCommand())
	cmd.AddCommand(newUserLifecycleCommand("suspend", "Suspend a user",
		func(ctx context.Context, users okta.UsersClient, id string) error { return users.Suspend(ctx, id) },
		"Suspended user %s\n"))
	cmd.AddCommand(newUserLifecycleCommand("unsuspend", "Unsuspend a user",
		func(ctx context.Context, users okta.UsersClient, id string) error { return users.Unsuspend(ctx, id) },
		"Unsuspended user %s\n"))
	cmd.AddCommand(newUserLifecycleCommand("unlock", "Unlock a locked-out user",
		func(ctx context.Context, users okta.UsersClient, id string) error { return users.Unlock(ctx, id) },
		"Unlocked user %s\n"))
	cmd.AddCommand(newUsersResetPasswordCommand())
	cmd.AddCommand(newUsersExpirePasswordCommand())
	cmd.AddCommand(newUsersGroupsCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long: `List users with optional server-side and client-side filtering.

Examples:
  okta users list --query jane
  okta users list --filter 'status eq "LOCKED_OUT"'
  okta users list --all --where 'profile.department == "Sales" && daysSince(lastLogin) > 90'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			pager, err := client.Users().Pager(ctx, opts.params())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			result, err := listEntities(ctx, opts, pager, okta.UserSchema.Encode)
			if err != nil {
				return err
			}

			return outputUsers(cmd.OutOrStdout(), result.items, result.more)
		},
	}

	addListFlags(cmd, opts, true)

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID_OR_LOGIN",
		Short: "Get user details",
		Long:  "Display a user by ID or login. Use 'me' for the user the token belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputUser(cmd.OutOrStdout(), user)
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var (
		login          string
		email          string
		firstName      string
		lastName       string
		mobilePhone    string
		password       string
		promptPassword bool
		activate       bool
		changeOnLogin  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a user, optionally with a password, and activate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" {
				return constants.ErrLoginRequired
			}

			if email == "" {
				email = login
			}

			if promptPassword {
				var err error

				password, err = promptNewPassword(cmd)
				if err != nil {
					return err
				}
			}

			user := okta.NewUser(login, email, firstName, lastName)
			user.Profile.MobilePhone = mobilePhone

			if password != "" {
				user.WithPassword(password)
			}

			createOpts := &okta.CreateUserOptions{Activate: &activate}
			if changeOnLogin {
				createOpts.NextLogin = "changePassword"
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.Users().Create(ctx, user, createOpts)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return outputUser(cmd.OutOrStdout(), created)
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "login (usually an email address)")
	cmd.Flags().StringVar(&email, "email", "", "primary email (defaults to the login)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&mobilePhone, "mobile-phone", "", "mobile phone number")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().BoolVar(&promptPassword, "prompt-password", false, "prompt for the initial password")
	cmd.Flags().BoolVar(&activate, "activate", true, "activate the user after creation")
	cmd.Flags().BoolVar(&changeOnLogin, "change-password-on-login", false, "require a password change on first login")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var (
		email       string
		firstName   string
		lastName    string
		mobilePhone string
		department  string
		title       string
		replace     bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user profile",
		Long:  "Update profile attributes of a user. Only the given attributes change unless --replace is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := &okta.User{Profile: &okta.UserProfile{
				Email:       email,
				FirstName:   firstName,
				LastName:    lastName,
				MobilePhone: mobilePhone,
				Department:  department,
				Title:       title,
			}}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			updated, err := client.Users().Update(ctx, args[0], user, !replace)
			if err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}

			return outputUser(cmd.OutOrStdout(), updated)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "primary email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&mobilePhone, "mobile-phone", "", "mobile phone number")
	cmd.Flags().StringVar(&department, "department", "", "department")
	cmd.Flags().StringVar(&title, "title", "", "job title")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole profile instead of merging")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	var (
		force      bool
		deactivate bool
		sendEmail  bool
	)

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Long:  "Permanently delete a user. Okta only deletes deprovisioned users, so the user is deactivated first by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, fmt.Sprintf("Really delete user '%s'?", args[0]), force) {
				return nil
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Users().Delete(ctx, args[0], &okta.DeleteUserOptions{
				Deactivate: deactivate,
				SendEmail:  sendEmail,
			})
			if err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted user %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	cmd.Flags().BoolVar(&deactivate, "deactivate", true, "deactivate the user before deleting")
	cmd.Flags().BoolVar(&sendEmail, "send-email", false, "notify the admin of the deactivation")

	return cmd
}

func newUsersActivateCommand() *cobra.Command {
	var (
		sendEmail  bool
		reactivate bool
	)

	cmd := &cobra.Command{
		Use:   "activate ID",
		Short: "Activate a user",
		Long:  "Activate a staged user, or reactivate a provisioned one with --reactivate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			var token *okta.ActivationToken
			if reactivate {
				token, err = client.Users().Reactivate(ctx, args[0], sendEmail)
			} else {
				token, err = client.Users().Activate(ctx, args[0], sendEmail)
			}

			if err != nil {
				return fmt.Errorf("failed to activate user: %w", err)
			}

			out := cmd.OutOrStdout()
			if token == nil || token.ActivationURL == "" {
				_, _ = fmt.Fprintf(out, "Activated user %s\n", args[0])

				return nil
			}

			return render(out, token, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("Activation URL", token.ActivationURL)
				_ = table.Append("Activation Token", token.ActivationToken)

				return renderTable(table)
			})
		},
	}

	cmd.Flags().BoolVar(&sendEmail, "send-email", true, "email the activation link to the user")
	cmd.Flags().BoolVar(&reactivate, "reactivate", false, "reactivate a user stuck in PROVISIONED")

	return cmd
}

func newUsersDeactivateCommand() *cobra.Command {
	var sendEmail bool

	cmd := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Users().Deactivate(ctx, args[0], sendEmail)
			if err != nil {
				return fmt.Errorf("failed to deactivate user: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deactivated user %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&sendEmail, "send-email", false, "notify the admin of the deactivation")

	return cmd
}

// newUserLifecycleCommand creates a command running one argument-free lifecycle
// operation on a user.
func newUserLifecycleCommand(
	use, short string, operation func(context.Context, okta.UsersClient, string) error, successMessage string,
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = operation(ctx, client.Users(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s user: %w", use, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), successMessage, args[0])

			return nil
		},
	}
}

func newUsersResetPasswordCommand() *cobra.Command {
	var sendEmail bool

	cmd := &cobra.Command{
		Use:   "reset-password ID",
		Short: "Reset a user's password",
		Long:  "Start a password reset. Without --send-email the reset link is printed instead of emailed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			token, err := client.Users().ResetPassword(ctx, args[0], sendEmail)
			if err != nil {
				return fmt.Errorf("failed to reset password: %w", err)
			}

			out := cmd.OutOrStdout()
			if token == nil || token.ResetPasswordURL == "" {
				_, _ = fmt.Fprintf(out, "Password reset email sent to user %s\n", args[0])

				return nil
			}

			return render(out, token, func(w io.Writer) error {
				_, _ = fmt.Fprintf(w, "Reset password URL: %s\n", token.ResetPasswordURL)

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&sendEmail, "send-email", true, "email the reset link to the user")

	return cmd
}

func newUsersExpirePasswordCommand() *cobra.Command {
	var tempPassword bool

	cmd := &cobra.Command{
		Use:   "expire-password ID",
		Short: "Expire a user's password",
		Long:  "Expire the password so the user must change it at next login, optionally issuing a temporary one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if tempPassword {
				temp, err := client.Users().ExpirePasswordWithTempPassword(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to expire password: %w", err)
				}

				return render(out, temp, func(w io.Writer) error {
					_, _ = fmt.Fprintf(w, "Temporary password: %s\n", temp.TempPassword)

					return nil
				})
			}

			user, err := client.Users().ExpirePassword(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to expire password: %w", err)
			}

			return outputUser(out, user)
		},
	}

	cmd.Flags().BoolVar(&tempPassword, "temp-password", false, "issue a temporary password")

	return cmd
}

func newUsersGroupsCommand() *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "groups ID",
		Short: "List the groups of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predicate, err := compileWhere(where)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			groups, err := client.Users().ListGroups(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list groups of user: %w", err)
			}

			groups, err = filterWhere(groups, predicate, okta.GroupSchema.Encode)
			if err != nil {
				return err
			}

			return outputGroups(cmd.OutOrStdout(), groups, false)
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "client-side expression over the group")

	return cmd
}

func outputUsers(w io.Writer, users []*okta.User, more bool) error {
	return render(w, users, func(w io.Writer) error {
		if len(users) == 0 {
			_, _ = io.WriteString(w, "No users found\n")

			return nil
		}

		table := newTable(w, "ID", "Login", "Name", "Status", "Created", "Last Login")

		for _, user := range users {
			login, name := "", ""
			if user.Profile != nil {
				login = user.Profile.Login
				name = joinNonEmpty(" ", user.Profile.FirstName, user.Profile.LastName)
			}

			_ = table.Append(
				user.ID,
				valueOrNA(login),
				valueOrNA(name),
				formatStatus(user.Status),
				formatTime(user.Created),
				formatTime(user.LastLogin),
			)
		}

		err := renderTable(table)
		printMoreHint(w, more)

		return err
	})
}

func outputUser(w io.Writer, user *okta.User) error {
	return render(w, user, func(w io.Writer) error {
		table := newTable(w, "Property", "Value")
		_ = table.Append("ID", user.ID)
		_ = table.Append("Status", formatStatus(user.Status))

		if user.TransitioningToStatus != "" {
			_ = table.Append("Transitioning To", formatStatus(user.TransitioningToStatus))
		}

		if profile := user.Profile; profile != nil {
			_ = table.Append("Login", valueOrNA(profile.Login))
			_ = table.Append("Email", valueOrNA(profile.Email))
			_ = table.Append("Name", valueOrNA(joinNonEmpty(" ", profile.FirstName, profile.LastName)))

			if profile.MobilePhone != "" {
				_ = table.Append("Mobile Phone", profile.MobilePhone)
			}

			if profile.Department != "" {
				_ = table.Append("Department", profile.Department)
			}
		}

		if user.Credentials != nil && user.Credentials.Provider != nil {
			_ = table.Append("Provider", joinNonEmpty(" / ", user.Credentials.Provider.Type, user.Credentials.Provider.Name))
		}

		_ = table.Append("Created", formatTime(user.Created))
		_ = table.Append("Activated", formatTime(user.Activated))
		_ = table.Append("Last Login", formatTime(user.LastLogin))
		_ = table.Append("Password Changed", formatTime(user.PasswordChanged))

		return renderTable(table)
	})
}
