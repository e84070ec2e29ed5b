package main

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/rhyrak/go-pick/internal/store"
	"github.com/spf13/cobra"
)

func runChanges(cmd *cobra.Command, args []string) error {
	notify, _ := cmd.Flags().GetBool("notify")

	table, err := loadTable()
	if err != nil {
		return err
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Rejected rows stay in so sessions keep their position within a course.
	changes, err := db.CheckTimingChanges(cfg.Data.Term, table.Rows)
	if err != nil {
		return fmt.Errorf("checking timing changes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes")
		return nil
	}

	lines := make([]string, len(changes))
	for i, c := range changes {
		lines[i] = c.String()
		fmt.Fprintf(out, "- %s\n", lines[i])
	}
	if notify {
		msg := fmt.Sprintf("%d timing changes in term %s", len(changes), cfg.Data.Term)
		if len(lines) == 1 {
			msg = lines[0]
		}
		if err := beeep.Notify("gopick", msg, ""); err != nil {
			log.Warn("desktop notification failed", "error", err)
		}
		log.Debug("notified", "changes", strings.Join(lines, "; "))
	}
	return nil
}
