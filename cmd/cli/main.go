package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rhyrak/go-pick/internal/config"
	"github.com/rhyrak/go-pick/internal/csvio"
	"github.com/rhyrak/go-pick/internal/logging"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/pkg/model"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	sessionsFile string
	logLevel     string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gopick",
	Short: "Pick conflict-free class schedules from a course offering table",
	Long: "gopick reads the course offering table, builds every conflict-free combination of\n" +
		"one section per chosen course and shows the ones that best match your preferences.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List selectable courses",
	Args:  cobra.NoArgs,
	RunE:  runCourses,
}

var generateCmd = &cobra.Command{
	Use:   "generate COURSE...",
	Short: "Print the best schedules for the given base codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

var browseCmd = &cobra.Command{
	Use:   "browse COURSE...",
	Short: "Step through the best schedules interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBrowse,
}

var exportCmd = &cobra.Command{
	Use:   "export COURSE...",
	Short: "Write one of the best schedules to CSV and/or iCalendar",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Report timing changes since the last check of this term",
	Args:  cobra.NoArgs,
	RunE:  runChanges,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/gopick/config.toml)")
	rootCmd.PersistentFlags().StringVar(&sessionsFile, "sessions", "", "course offering CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	for _, c := range []*cobra.Command{generateCmd, browseCmd, exportCmd} {
		c.Flags().StringSlice("prefer", nil, fmt.Sprintf("preferences to apply %v (overrides config)", scheduler.PreferenceNames))
		c.Flags().String("before", "", "no_before cutoff, e.g. 11:00")
		c.Flags().String("after", "", "no_after cutoff, e.g. 17:00")
	}
	for _, c := range []*cobra.Command{generateCmd, exportCmd} {
		c.Flags().Int("index", 1, "which best schedule to print and export (1-based)")
		c.Flags().String("csv", "", "export the selected schedule to this CSV file")
		c.Flags().String("ics", "", "export the selected schedule to this iCalendar file")
		c.Flags().String("term-start", "", "first day of classes for --ics, e.g. 2026-01-12 or \"next monday\"")
		c.Flags().Int("weeks", 15, "number of weeks for --ics")
	}
	generateCmd.Flags().Bool("all", false, "print every tied best schedule")
	generateCmd.Flags().Bool("plain", false, "print meetings grouped by day instead of the weekly grid")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	changesCmd.Flags().Bool("notify", false, "send a desktop notification when something changed")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(changesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if sessionsFile != "" {
		c.Data.SessionsFile = sessionsFile
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	cfg = c
	log = logging.New(cfg.Log.Level, os.Stderr)
	return nil
}

// loadTable reads the offering table and logs every rejected row.
func loadTable() (csvio.Table, error) {
	table, err := csvio.LoadSessions(cfg.Data.SessionsFile, cfg.DelimiterRune())
	if err != nil {
		return csvio.Table{}, err
	}
	for _, rej := range table.Rejected {
		log.Warn("row rejected", "file", cfg.Data.SessionsFile, "line", rej.Line, "reason", rej.Reason)
	}
	return table, nil
}

func loadSessions() ([]model.Session, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	if len(table.Sessions) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", cfg.Data.SessionsFile)
	}
	log.Debug("sessions loaded", "rows", len(table.Sessions), "rejected", len(table.Rejected))
	return table.Sessions, nil
}

func runCourses(cmd *cobra.Command, args []string) error {
	sessions, err := loadSessions()
	if err != nil {
		return err
	}
	for _, o := range scheduler.Offerings(sessions) {
		fmt.Fprintln(cmd.OutOrStdout(), o.Label())
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	def := config.DefaultConfig()
	if err := config.Save(&def, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
