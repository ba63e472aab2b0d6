// Package main is the entry point for the auth-starter-cli application.
// It registers the administrative sub-commands (migrate, users, messages,
// sessions) on the root command and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/dwestland/auth-starter/cmd/auth-starter-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "auth-starter-cli",
		Short: "Administration CLI for auth-starter",
		Long: `auth-starter-cli manages the auth-starter database.
Runs schema migrations, lists users and contact messages, assigns roles
and purges expired sessions and sign-in links.

The configuration is read the same way as the web server:
CONFIG_PATH (or --config), then .env and the environment.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to the YAML configuration file")

	factory := commands.NewServicesFactory(func() string {
		if configPath == "" {
			return "configs/web-app.yaml"
		}
		return configPath
	})

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd, factory); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, factory commands.ServicesFactory) error {
	if err := commands.InitMigrateCommands(rootCmd, factory); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitUserCommands(rootCmd, factory); err != nil {
		return fmt.Errorf("failed to initialize user commands: %w", err)
	}

	if err := commands.InitMessageCommands(rootCmd, factory); err != nil {
		return fmt.Errorf("failed to initialize message commands: %w", err)
	}

	if err := commands.InitSessionCommands(rootCmd, factory); err != nil {
		return fmt.Errorf("failed to initialize session commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
