package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SessionCommandHandler maintains the session tables via CLI.
type SessionCommandHandler struct {
	factory ServicesFactory
}

// PurgeSessionsCmd deletes expired sessions and verification records
func (commandHandler *SessionCommandHandler) PurgeSessionsCmd(cmd *cobra.Command, _ []string) error {
	services, err := commandHandler.factory(cmd.Context())
	if err != nil {
		return err
	}

	sessions, verifications, err := services.Sessions.PurgeExpired(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to purge expired records: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired sessions and %d expired verifications\n", sessions, verifications)
	return nil
}

// InitSessionCommands registers the sessions command group.
func InitSessionCommands(rootCmd *cobra.Command, factory ServicesFactory) error {
	handler := &SessionCommandHandler{factory: factory}

	var sessionsCmd = &cobra.Command{
		Use:   "sessions",
		Short: "Maintain sessions",
	}

	var purgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions and sign-in links",
		Args:  cobra.NoArgs,
		RunE:  handler.PurgeSessionsCmd,
	}
	sessionsCmd.AddCommand(purgeCmd)

	rootCmd.AddCommand(sessionsCmd)
	return nil
}
