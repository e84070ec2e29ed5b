package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rhyrak/go-pick/internal/calendar"
	"github.com/rhyrak/go-pick/internal/csvio"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/internal/tui"
	"github.com/rhyrak/go-pick/pkg/model"
	"github.com/spf13/cobra"
)

// preferences uses the --prefer flags when given and the config otherwise.
func preferences(cmd *cobra.Command) (model.Preferences, error) {
	before, _ := cmd.Flags().GetString("before")
	after, _ := cmd.Flags().GetString("after")
	if !cmd.Flags().Changed("prefer") {
		if before != "" {
			cfg.Preferences.BeforeCutoff = before
		}
		if after != "" {
			cfg.Preferences.AfterCutoff = after
		}
		return cfg.ScoringPreferences()
	}
	names, _ := cmd.Flags().GetStringSlice("prefer")
	return scheduler.ParsePreferences(names, before, after)
}

// generate loads the table and ranks every schedule for codes.
func generate(cmd *cobra.Command, codes []string) (scheduler.State, scheduler.Catalog, error) {
	prefs, err := preferences(cmd)
	if err != nil {
		return scheduler.State{}, nil, err
	}
	sessions, err := loadSessions()
	if err != nil {
		return scheduler.State{}, nil, err
	}
	catalog, warnings, err := scheduler.BuildCatalog(sessions, codes)
	for _, w := range warnings {
		log.Warn("value replaced by default", "section", w.Section, "field", w.Field, "value", w.Value)
	}
	if err != nil {
		return scheduler.State{}, nil, err
	}

	state := scheduler.Generate(catalog, prefs)
	log.Info("schedules generated", "courses", len(catalog), "valid", state.Generated(), "best", state.Len(), "penalty", state.Score())
	return state, catalog, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	state, catalog, err := generate(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if state.Status() == scheduler.NoSchedules {
		fmt.Fprintln(out, "No possible schedules")
		return nil
	}

	state = seek(cmd, state)
	all, _ := cmd.Flags().GetBool("all")
	plain, _ := cmd.Flags().GetBool("plain")

	for i, sched := range state.Schedules() {
		if !all && i != state.Index() {
			continue
		}
		fmt.Fprintf(out, "Best Schedule %d of %d (penalty %d)\n", i+1, state.Len(), state.Score())
		fmt.Fprintf(out, "Lectures: %s\n", sched.Lectures())
		if plain {
			csvio.PrintSchedule(out, sched)
		} else {
			fmt.Fprintf(out, "\n%s\n", tui.RenderWeek(sched))
		}
		if valid, report := scheduler.Validate(catalog, sched); !valid {
			return fmt.Errorf("generated schedule failed validation:\n%s", report)
		}
	}

	current, _ := state.Current()
	return writeExports(cmd, current)
}

func runExport(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	icsPath, _ := cmd.Flags().GetString("ics")
	if csvPath == "" && icsPath == "" {
		return fmt.Errorf("nothing to export: pass --csv and/or --ics")
	}

	state, _, err := generate(cmd, args)
	if err != nil {
		return err
	}
	if state.Status() == scheduler.NoSchedules {
		return fmt.Errorf("no possible schedules for %v", args)
	}
	state = seek(cmd, state)
	current, _ := state.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "Exporting schedule %d of %d: %s\n", state.Index()+1, state.Len(), current.Lectures())
	return writeExports(cmd, current)
}

// seek moves state to the 1-based --index flag.
func seek(cmd *cobra.Command, state scheduler.State) scheduler.State {
	index, _ := cmd.Flags().GetInt("index")
	for i := 1; i < index; i++ {
		state = state.Next()
	}
	return state
}

// writeExports writes current to the files named by --csv and --ics.
func writeExports(cmd *cobra.Command, current model.Schedule) error {
	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		if _, err := csvio.ExportSchedule(current, path); err != nil {
			return err
		}
		log.Info("schedule exported", "path", path)
	}
	if path, _ := cmd.Flags().GetString("ics"); path != "" {
		if err := exportICS(cmd, current, path); err != nil {
			return err
		}
		log.Info("calendar exported", "path", path)
	}
	return nil
}

func exportICS(cmd *cobra.Command, sched model.Schedule, path string) error {
	loc, err := time.LoadLocation(cfg.Data.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Data.Timezone, err)
	}
	termText, _ := cmd.Flags().GetString("term-start")
	weeks, _ := cmd.Flags().GetInt("weeks")
	start, err := calendar.ParseTermStart(termText, time.Now().In(loc))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	skipped, err := calendar.Encode(f, sched, calendar.Options{TermStart: start, Weeks: weeks, Location: loc})
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Warn("meetings without a valid time range left out of calendar", "count", skipped)
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	state, _, err := generate(cmd, args)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(tui.NewBrowser(state), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
