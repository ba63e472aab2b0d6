package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dwestland/auth-starter/internal/domain/users"

	"github.com/spf13/cobra"
)

// UserCommandHandler encapsulates user administration via CLI.
type UserCommandHandler struct {
	factory ServicesFactory
}

// ListUsersCmd prints users, optionally filtered by role
func (commandHandler *UserCommandHandler) ListUsersCmd(cmd *cobra.Command, _ []string) error {
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return fmt.Errorf("invalid role flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}

	query := users.NewUserQuery()
	query.Limit = limit
	if role != "" {
		parsed, err := users.ParseRole(role)
		if err != nil {
			return err
		}
		query.Role = parsed
	}

	services, err := commandHandler.factory(cmd.Context())
	if err != nil {
		return err
	}

	list, err := services.Users.List(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tVERIFIED")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Email, u.Name, u.Role, u.EmailVerified)
	}
	return w.Flush()
}

// SetRoleCmd assigns a role to the user registered with an email
func (commandHandler *UserCommandHandler) SetRoleCmd(cmd *cobra.Command, _ []string) error {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("invalid email flag: %w", err)
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return fmt.Errorf("invalid role flag: %w", err)
	}

	parsed, err := users.ParseRole(role)
	if err != nil {
		return err
	}

	services, err := commandHandler.factory(cmd.Context())
	if err != nil {
		return err
	}

	user, err := services.Users.SetRole(cmd.Context(), users.NormalizeEmail(email), parsed)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
	return nil
}

// InitUserCommands registers the users command group.
func InitUserCommands(rootCmd *cobra.Command, factory ServicesFactory) error {
	handler := &UserCommandHandler{factory: factory}

	var usersCmd = &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	var listUsersCmd = &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  handler.ListUsersCmd,
	}
	listUsersCmd.Flags().StringP("role", "", "", "Only list users with this role ("+roleNames()+")")
	listUsersCmd.Flags().IntP("limit", "", 50, "Maximum number of users to list")
	usersCmd.AddCommand(listUsersCmd)

	var setRoleCmd = &cobra.Command{
		Use:   "set-role",
		Short: "Assign a role to a user",
		Args:  cobra.NoArgs,
		RunE:  handler.SetRoleCmd,
	}
	setRoleCmd.Flags().StringP("email", "", "", "Email of the user")
	setRoleCmd.Flags().StringP("role", "", "", "Role to assign ("+roleNames()+")")
	if err := setRoleCmd.MarkFlagRequired("email"); err != nil {
		return err
	}
	if err := setRoleCmd.MarkFlagRequired("role"); err != nil {
		return err
	}
	usersCmd.AddCommand(setRoleCmd)

	rootCmd.AddCommand(usersCmd)
	return nil
}

func roleNames() string {
	names := make([]string, 0, len(users.Roles()))
	for _, r := range users.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}
