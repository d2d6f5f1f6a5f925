package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/render"
)

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments",
		Short: "List comments and the average rating",
		Long:  "List every comment on the site in the order they were left, with the average star rating.",
		Args:  cobra.NoArgs,
		RunE:  runComments,
	}
}

func runComments(cmd *cobra.Command, args []string) error {
	listing, err := newAPIClient().ListComments(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, listing)
	}

	return render.Text(out, render.NewView(listing.Comments, listing.AverageRating, time.Local))
}
