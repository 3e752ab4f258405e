package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/borgmon/puzzle-alarm/pkg/config"
	"github.com/borgmon/puzzle-alarm/pkg/logger"
	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/ui/themes"
)

type flags struct {
	configPath string
	logLevel   string
	snooze     int
	theme      string
	mute       bool
}

func main() {
	if err := newRootCommand(runApp).Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cfg *models.Config) error {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(level)
	defer func() { _ = log.Sync() }()

	pa := newPuzzleAlarm(app.New(), cfg, log)
	pa.run()
	return nil
}

// newRootCommand builds the CLI; run receives the resolved configuration
func newRootCommand(run func(*models.Config) error) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "puzzle-alarm",
		Short: "Desktop alarm clock that only stops ringing once you solve a puzzle.",
		Long: `Shows an analog clock and a list of alarms. When an alarm is due it plays
its sound on a loop and opens a small arithmetic puzzle. Answer it to turn the
alarm off, or hold Snooze to hear it again a few minutes later.

Alarms and settings live for the running process only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.SilenceUsage = true

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to configuration file (default ./"+config.DefaultFilename+" when present)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", models.DefaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&f.snooze, "snooze", models.DefaultSnoozeMinutes, "snooze length in minutes")
	cmd.Flags().StringVar(&f.theme, "theme", models.DefaultTheme, "color theme")
	cmd.Flags().BoolVar(&f.mute, "mute", false, "start with alarm sounds muted")

	cmd.AddCommand(newInitConfigCommand())

	return cmd
}

func newInitConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a configuration file with the default settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFilename
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, models.DefaultConfig()); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	}
}

// resolveConfig loads the config file and applies the flags the user set
func resolveConfig(cmd *cobra.Command, f *flags) (*models.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		if _, ok := logger.ParseLevel(f.logLevel); !ok {
			return nil, fmt.Errorf("unknown log level %q", f.logLevel)
		}
		cfg.LogLevel = f.logLevel
	}
	if changed("snooze") {
		if f.snooze < 1 || f.snooze > models.MaxSnoozeMinutes {
			return nil, fmt.Errorf("snooze must be between 1 and %d minutes", models.MaxSnoozeMinutes)
		}
		cfg.SnoozeMinutes = f.snooze
	}
	if changed("theme") {
		if !themes.Exists(f.theme) {
			return nil, fmt.Errorf("unknown theme %q, expected one of %v", f.theme, themes.Names())
		}
		cfg.Theme = f.theme
	}
	if changed("mute") {
		cfg.Muted = f.mute
	}

	cfg.Normalize()
	return cfg, nil
}
