package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/contact"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `chat "message"`,
		Short: "Send a message to the site bot",
		Long:  "Send one message to the site chatbot and print its reply.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	flow := contact.NewChatFlow(newAPIClient())
	flow.SetInput(strings.Join(args, " "))

	if err := flow.Send(cmd.Context()); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]string{"reply": flow.Reply()})
	}

	fmt.Fprintln(out, flow.Transcript())
	return nil
}
