package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/config"
	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
	"crmsearch/internal/provider"
	"crmsearch/internal/storage"
	"crmsearch/internal/ui"
	"crmsearch/internal/ui/services/recency"
)

const usage = `Usage:
  crmsearch [--config FILE]               open the search overlay
  crmsearch [--config FILE] recents       list recent selections
  crmsearch [--config FILE] recents --clear
  crmsearch [--config FILE] init-config   write a default config file
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config.toml")
	flag.StringVar(&configPath, "c", "", "Path to config.toml (shorthand)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configSvc.Path(), err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "":
	case "init-config":
		os.Exit(initConfig(configSvc, cfg))
	case "recents":
		os.Exit(recents(cfg, flag.Args()[1:]))
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client, err := provider.NewClient(provider.Options{
		BaseURL:          cfg.Backend.URL,
		Token:            cfg.Backend.Token,
		Timeout:          cfg.Timeout(),
		PerCategoryLimit: cfg.Backend.PerCategoryLimit,
		Locale:           cfg.UI.Locale,
		Currency:         cfg.UI.Currency,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid backend: %v\n", err)
		os.Exit(1)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	uiModel := ui.NewModel(bus, cfg, ui.Deps{Provider: client, Store: store})
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.SearchFailedEvent); ok {
			if errors.Is(event.Err, provider.ErrUnauthorized) {
				log.Printf("Backend rejected the token for %q", event.Query)
			}
		}
	})
	bus.Subscribe(eventbus.EventRecentsPersistFailed, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	log.Printf("Starting UI against %s", cfg.Backend.URL)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	if route := uiModel.LastRoute(); route != "" {
		fmt.Println(route)
	}
}

// recents prints or clears the persisted recent selections
func recents(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("recents", flag.ExitOnError)
	clearAll := fs.Bool("clear", false, "Remove every recent selection")
	_ = fs.Parse(args)

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		return 1
	}
	defer store.Close()

	svc := recency.NewService(store, cfg.Storage.Key, cfg.Search.RecentLimit, nil)
	if *clearAll {
		if err := svc.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Println("Recent searches cleared")
		return 0
	}

	if err := svc.LoadResult().Err; err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	list := svc.List()
	if len(list) == 0 {
		fmt.Println("No recent searches")
		return 0
	}
	for _, rec := range list {
		fmt.Printf("%-11s %-8s %-30s %-16q %s\n",
			rec.Category.Label(), rec.ID, rec.Name, rec.Query, rec.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	return 0
}

// initConfig writes the effective configuration if no file exists yet
func initConfig(configSvc config.ConfigService, cfg *config.Config) int {
	path := configSvc.Path()
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Config already exists at %s\n", path)
		return 1
	}
	if err := configSvc.SaveToPath(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Println(path)
	return 0
}
