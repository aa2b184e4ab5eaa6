package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"crmsearch/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Backend BackendSettings `toml:"backend"`
	Search  SearchSettings  `toml:"search"`
	Storage StorageSettings `toml:"storage"`
	UI      UISettings      `toml:"ui"`
	Log     LogSettings     `toml:"log"`
}

// BackendSettings describes the CRM quick-search endpoint
type BackendSettings struct {
	URL              string `toml:"url"`
	Token            string `toml:"token"`
	TimeoutMS        int    `toml:"timeout_ms"`
	PerCategoryLimit int    `toml:"per_category_limit"` // 0 leaves the cap to the backend
}

// SearchSettings tunes the query session
type SearchSettings struct {
	DebounceMS     int `toml:"debounce_ms"`
	MinQueryLength int `toml:"min_query_length"`
	RecentLimit    int `toml:"recent_limit"`
}

// StorageSettings selects where recent selections are kept
type StorageSettings struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	Key    string `toml:"key"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	FrontendURL string `toml:"frontend_url"`
	Currency    string `toml:"currency"`
	Locale      string `toml:"locale"`
}

// LogSettings configures the log file
type LogSettings struct {
	File string `toml:"file"`
}

// Timeout returns the provider request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutMS) * time.Millisecond
}

// Debounce returns the debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend url is not set (set [backend] url or CRMSEARCH_BACKEND_URL)")
	}
	switch c.Storage.Driver {
	case storage.DriverFile, storage.DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return errors.New("storage key is empty")
	}
	if c.Backend.TimeoutMS <= 0 {
		return fmt.Errorf("backend timeout_ms must be positive, got %d", c.Backend.TimeoutMS)
	}
	if c.Search.DebounceMS <= 0 {
		return fmt.Errorf("search debounce_ms must be positive, got %d", c.Search.DebounceMS)
	}
	if c.Search.MinQueryLength <= 0 {
		return fmt.Errorf("search min_query_length must be positive, got %d", c.Search.MinQueryLength)
	}
	if c.Search.RecentLimit <= 0 {
		return fmt.Errorf("search recent_limit must be positive, got %d", c.Search.RecentLimit)
	}
	if c.Backend.PerCategoryLimit < 0 {
		return fmt.Errorf("backend per_category_limit must not be negative, got %d", c.Backend.PerCategoryLimit)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	getenv   func(string) string
}

// NewConfigService creates a config service reading from the user config dir
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(Dir(), "config.toml"),
		getenv:   os.Getenv,
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path, getenv: os.Getenv}
}

// Dir returns the crmsearch configuration directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "crmsearch")
}

// LoadDotEnv loads a .env file from the working directory if one exists
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it is missing.
// Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.applyEnv(cfg)
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Storage.Path = "" // derived from the driver unless the file sets it
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()
	cs.applyEnv(cfg)

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) applyEnv(cfg *Config) {
	// The web client reads these two; accept them so one .env serves both.
	for _, name := range []string{"REACT_APP_API_URL", "REACT_APP_BACKEND_URL", "CRMSEARCH_BACKEND_URL"} {
		if v := cs.getenv(name); v != "" {
			cfg.Backend.URL = v
		}
	}
	if v := cs.getenv("CRMSEARCH_TOKEN"); v != "" {
		cfg.Backend.Token = v
	}
	if v := cs.getenv("CRMSEARCH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutMS = ms
		}
	}
	if v := cs.getenv("CRMSEARCH_STORAGE_DRIVER"); v != "" {
		if cfg.Storage.Path == defaultStoragePath(cfg.Storage.Driver) {
			cfg.Storage.Path = defaultStoragePath(v)
		}
		cfg.Storage.Driver = v
	}
	if v := cs.getenv("CRMSEARCH_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := cs.getenv("CRMSEARCH_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := cs.getenv("CRMSEARCH_FRONTEND_URL"); v != "" {
		cfg.UI.FrontendURL = v
	}
}

// fillDefaults restores defaults for keys a file set to their zero value
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Backend.TimeoutMS == 0 {
		c.Backend.TimeoutMS = def.Backend.TimeoutMS
	}
	if c.Search.DebounceMS == 0 {
		c.Search.DebounceMS = def.Search.DebounceMS
	}
	if c.Search.MinQueryLength == 0 {
		c.Search.MinQueryLength = def.Search.MinQueryLength
	}
	if c.Search.RecentLimit == 0 {
		c.Search.RecentLimit = def.Search.RecentLimit
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = def.Storage.Key
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Driver)
	}
	if c.UI.Currency == "" {
		c.UI.Currency = def.UI.Currency
	}
	if c.UI.Locale == "" {
		c.UI.Locale = def.UI.Locale
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
}

func defaultStoragePath(driver string) string {
	if driver == storage.DriverSQLite {
		return filepath.Join(Dir(), "state.db")
	}
	return filepath.Join(Dir(), "state.json")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendSettings{
			TimeoutMS: 10000,
		},
		Search: SearchSettings{
			DebounceMS:     300,
			MinQueryLength: 2,
			RecentLimit:    5,
		},
		Storage: StorageSettings{
			Driver: storage.DriverFile,
			Path:   defaultStoragePath(storage.DriverFile),
			Key:    "crm_recent_searches",
		},
		UI: UISettings{
			Currency: "€",
			Locale:   "fr",
		},
		Log: LogSettings{
			File: "crmsearch.log",
		},
	}
}
