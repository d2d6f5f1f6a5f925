package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/comment"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <id>",
		Short: "Delete a comment",
		Long:  "Delete a comment directly from the database. Comments cannot be removed through the public API.",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrune,
	}
}

func runPrune(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %s", args[0])
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	svc := comment.NewService(comment.NewRepository(database), nil)
	if err := svc.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, comment.ErrNotFound) {
			return fmt.Errorf("comment #%d not found", id)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"id":      id,
			"removed": true,
		})
	}

	fmt.Fprintf(out, "Comment #%d removed.\n", id)
	return nil
}
