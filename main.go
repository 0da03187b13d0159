package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/commands"
	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/eventbus"
	"github.com/colonyops/hard75/internal/core/logging"
	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
	"github.com/colonyops/hard75/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back
	// to runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// eventBufferSize bounds queued bus events before publishers start dropping.
const eventBufferSize = 64

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		busCancel context.CancelFunc
		busDone   chan struct{}
		hardApp   = &hard75.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "hard75",
		Usage:     "Track the 75 Hard daily challenge",
		UsageText: "hard75 [global options] command [command options]",
		Description: `hard75 keeps the daily checklist for a 75 day challenge: two workouts, a
diet, a gallon of water, ten pages of reading, a progress photo, no alcohol,
no cheat meals and bed by ten.

Finish every task and end the day to advance. End a day with anything left
undone and the challenge starts over at day 1.

Run 'hard75' with no arguments to open the interactive checklist.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("HARD75_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/hard75.log)",
				Sources:     cli.EnvVars("HARD75_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("HARD75_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("HARD75_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogPath()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Unknown themes are reported by 'config validate'.
			palette, ok := styles.GetPalette(cfg.TUI.Theme)
			if !ok {
				palette, _ = styles.GetPalette(styles.DefaultTheme)
			}
			styles.SetTheme(palette)

			storage, err := hard75.OpenStorage(ctx, cfg)
			if err != nil {
				return ctx, fmt.Errorf("open storage: %w", err)
			}

			bus := eventbus.New(eventBufferSize)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			eventbus.NewNotificationRouter(bus).Register()

			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			busDone = make(chan struct{})
			go func() {
				defer close(busDone)
				bus.Start(busCtx)
			}()

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*hardApp = *hard75.NewApp(cfg, storage, bus)

			if err := hardApp.Challenge.Load(ctx); err != nil {
				if !errors.Is(err, hard75.ErrNotSaved) {
					return ctx, fmt.Errorf("load challenge: %w", err)
				}
				log.Warn().Err(err).Msg("challenge loaded but not persisted")
			}

			return printer.NewContext(ctx, printer.New(os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Flush queued events so they reach the log
			if busCancel != nil {
				busCancel()
				<-busDone
			}

			var closeErr error
			if err := hardApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				closeErr = err
			}

			if logCloser != nil {
				logCloser()
			}
			return closeErr
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, hardApp)

	app = commands.NewStatusCmd(flags, hardApp).Register(app)
	app = commands.NewToggleCmd(flags, hardApp).Register(app)
	app = commands.NewEndDayCmd(flags, hardApp).Register(app)
	app = commands.NewResetCmd(flags, hardApp).Register(app)
	app = commands.NewClearCmd(flags, hardApp).Register(app)
	app = commands.NewPhotoCmd(flags, hardApp).Register(app)
	app = commands.NewCalendarCmd(flags, hardApp).Register(app)
	app = commands.NewHistoryCmd(flags, hardApp).Register(app)
	app = commands.NewSnapshotCmd(flags, hardApp).Register(app)
	app = commands.NewRulesCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags, hardApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'hard75 --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
