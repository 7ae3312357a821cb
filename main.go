package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"invtrack/internal/config"
	"invtrack/internal/domain"
	"invtrack/internal/eventbus"
	"invtrack/internal/store"
	"invtrack/internal/ui"
)

// e2eEnv makes the TUI announce its first frame on stdout
const e2eEnv = "INVTRACK_E2E_TEST"

func main() {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invtrack",
		Usage: "browse and edit the products of a remote inventory store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "base URL of the product store",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path of the TOML config file",
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "use a seeded in-memory store instead of the remote one",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
		},
		Action:          runTUI,
		Commands:        commands(),
		HideHelpCommand: true,
	}
}

// appEnv is what every command needs: the resolved config, a store and the bus
type appEnv struct {
	cfg     *config.Config
	store   store.Store
	bus     eventbus.EventBus
	logFile io.Closer
}

func (e *appEnv) Close() {
	e.bus.Close()
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func setup(c *cli.Context) (*appEnv, error) {
	configSvc := config.NewConfigService()
	if path := c.String("config"); path != "" {
		configSvc = config.NewConfigServiceAt(path)
	}

	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return nil, err
	}
	if c.IsSet("store") {
		cfg.Store.URL = c.String("store")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return nil, err
	}

	env := &appEnv{cfg: cfg, bus: eventbus.New(), logFile: logFile}
	subscribeAudit(env.bus)

	if c.Bool("demo") {
		log.Info("Using the in-memory demo store")
		env.store = store.NewDemoStore()
		return env, nil
	}

	s, err := store.NewHTTPStore(cfg.Store)
	if err != nil {
		env.Close()
		return nil, err
	}
	log.WithField("url", cfg.Store.URL).Info("Using the HTTP store")
	env.store = s
	return env, nil
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	path := configSvc.Path()
	_, statErr := os.Stat(path)

	cfg, err := configSvc.Load()
	if err != nil {
		return nil, err
	}

	if os.IsNotExist(statErr) {
		if err := configSvc.SaveToPath(config.DefaultConfig(), path); err != nil {
			// A read-only config dir is not fatal; the defaults still apply.
			log.WithError(err).Warn("Failed to write default config")
		}
	}
	return cfg, nil
}

// setupLogging sends logrus output to the configured file. The terminal belongs to the TUI.
func setupLogging(lc config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	log.SetLevel(level)

	if lc.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if lc.File == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	logFile, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open log file %s", lc.File)
	}
	log.SetOutput(logFile)
	return logFile, nil
}

// subscribeAudit writes one log line per domain event
func subscribeAudit(bus eventbus.EventBus) {
	audit := func(e eventbus.DomainEvent) {
		entry := log.WithField("event", e.Type())
		switch ev := e.(type) {
		case domain.CollectionLoadedEvent:
			entry.WithField("count", ev.Count).Info("Collection loaded")
		case domain.CollectionLoadFailedEvent:
			entry.WithError(ev.Err).Warn("Collection load failed")
		case domain.ProductCreatedEvent:
			entry.WithField("name", ev.Product.Name).Info("Product created")
		case domain.ProductCreateFailedEvent:
			entry.WithError(ev.Err).Warn("Product create failed")
		case domain.ProductDeletedEvent:
			entry.WithField("id", ev.ID).Info("Product deleted")
		case domain.ProductDeleteFailedEvent:
			entry.WithError(ev.Err).Warn("Product delete failed")
		default:
			entry.Info("Event")
		}
	}
	for _, et := range []eventbus.EventType{
		eventbus.EventCollectionLoaded,
		eventbus.EventCollectionLoadFailed,
		eventbus.EventProductCreated,
		eventbus.EventProductCreateFailed,
		eventbus.EventProductDeleted,
		eventbus.EventProductDeleteFailed,
		eventbus.EventDeleteDeclined,
		eventbus.EventValidationFailed,
	} {
		bus.Subscribe(et, audit)
	}
}

func runTUI(c *cli.Context) error {
	if c.NArg() > 0 {
		return errors.Errorf("unknown command %q", c.Args().First())
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	model := ui.NewModel(c.Context, env.bus, env.cfg, env.store)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(c.Context))
	model.SetProgram(p)
	if os.Getenv(e2eEnv) == "1" {
		model.SetReadyWriter(os.Stdout)
	}

	log.Info("Starting UI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "error running program")
	}
	log.Info("UI exited")
	return nil
}
