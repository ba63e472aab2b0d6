package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/messages"

	"github.com/spf13/cobra"
)

const previewLength = 60

// MessageCommandHandler lists contact messages via CLI.
type MessageCommandHandler struct {
	factory ServicesFactory
}

// ListMessagesCmd prints the most recent contact messages
func (commandHandler *MessageCommandHandler) ListMessagesCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}

	services, err := commandHandler.factory(cmd.Context())
	if err != nil {
		return err
	}

	query := messages.NewMessageQuery()
	query.Limit = limit
	list, err := services.Messages.List(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tNAME\tEMAIL\tMESSAGE")
	for _, m := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.CreatedAt.UTC().Format(time.RFC3339), m.Name, m.Email, preview(m.Body))
	}
	return w.Flush()
}

// InitMessageCommands registers the messages command group.
func InitMessageCommands(rootCmd *cobra.Command, factory ServicesFactory) error {
	handler := &MessageCommandHandler{factory: factory}

	var messagesCmd = &cobra.Command{
		Use:   "messages",
		Short: "Inspect contact messages",
	}

	var listMessagesCmd = &cobra.Command{
		Use:   "list",
		Short: "List contact messages, newest first",
		Args:  cobra.NoArgs,
		RunE:  handler.ListMessagesCmd,
	}
	listMessagesCmd.Flags().IntP("limit", "", 50, "Maximum number of messages to list")
	messagesCmd.AddCommand(listMessagesCmd)

	rootCmd.AddCommand(messagesCmd)
	return nil
}

// preview flattens body to one line of at most previewLength runes.
func preview(body string) string {
	runes := []rune(body)
	for i, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			runes[i] = ' '
		}
	}
	if len(runes) > previewLength {
		return string(runes[:previewLength-3]) + "..."
	}
	return string(runes)
}
