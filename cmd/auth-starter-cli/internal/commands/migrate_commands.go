package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCommandHandler runs schema migrations.
type MigrateCommandHandler struct {
	factory ServicesFactory
}

// MigrateCmd applies the schema to the configured database
func (commandHandler *MigrateCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	services, err := commandHandler.factory(cmd.Context())
	if err != nil {
		return err
	}

	if err := services.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Database migrations completed successfully")
	return nil
}

// InitMigrateCommands registers the migrate command.
func InitMigrateCommands(rootCmd *cobra.Command, factory ServicesFactory) error {
	handler := &MigrateCommandHandler{factory: factory}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	return nil
}
