// Package cli defines the cobra command tree for pf.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/client"
	"github.com/marsadembi/portfolio/internal/db"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pf",
		Short:         "Run and talk to the portfolio site",
		Long:          "Serve the portfolio site, leave comments with a star rating, read them back, and chat with the site bot from a terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/pf/portfolio.db)")

	root.AddCommand(
		newServeCmd(),
		newCommentsCmd(),
		newCommentCmd(),
		newChatCmd(),
		newThemeCmd(),
		newPruneCmd(),
		newRemoteCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
// Used by commands that work on the database directly.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the portfolio API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
