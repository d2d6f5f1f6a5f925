package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/comment"
	"github.com/marsadembi/portfolio/internal/contact"
	"github.com/marsadembi/portfolio/internal/render"
)

type commentOptions struct {
	name    string
	email   string
	message string
	rating  int
}

func newCommentCmd() *cobra.Command {
	var opts commentOptions

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Leave a comment with a star rating",
		Long:  "Send a comment through the contact form flow. Name, email, message and a 1-5 rating are all required.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "your name")
	cmd.Flags().StringVar(&opts.email, "email", "", "your email")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "comment text")
	cmd.Flags().IntVar(&opts.rating, "rating", 0, "star rating (1-5)")

	return cmd
}

func runComment(cmd *cobra.Command, opts commentOptions) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	// Keep stdout clean for JSON consumers.
	alerts := out
	if isJSON() {
		alerts = errOut
	}

	flow := contact.NewSubmissionFlow(
		newAPIClient(),
		terminalNotifier{out: alerts, errOut: errOut},
		terminalCelebrator{out: alerts},
	)

	form := &contact.Form{Name: opts.name, Email: opts.email, Message: opts.message}
	form.Rating.Select(opts.rating)

	if err := flow.Submit(cmd.Context(), form); err != nil {
		return err
	}

	v := flow.View()
	if isJSON() {
		return printJSON(out, comment.Listing{Comments: v.Comments, AverageRating: v.AverageRating})
	}

	fmt.Fprintln(out)
	return render.Text(out, render.NewView(v.Comments, v.AverageRating, time.Local))
}
