package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogName        = "dayplan.log"
	appDir                = "dayplan"
	configEnv             = "DAYPLAN_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Open      string `toml:"open"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	Calendar  string `toml:"calendar"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
	PrevDay   string `toml:"prev_day"`
	NextDay   string `toml:"next_day"`
	Save      string `toml:"save"`
}

type Config struct {
	ExportPath string `toml:"export_path" env:"DAYPLAN_EXPORT_PATH"`
	LogPath    string `toml:"log_path" env:"DAYPLAN_LOG_PATH"`
	LogLevel   string `toml:"log_level" env:"DAYPLAN_LOG_LEVEL"`
	SeedDemo   bool   `toml:"seed_demo" env:"DAYPLAN_SEED_DEMO"`
	// Mouse cells are scaled to points before swipe detection.
	CellWidth  int    `toml:"cell_width"`
	CellHeight int    `toml:"cell_height"`
	Keys       Keymap `toml:"keys"`
}

// ResolveConfigPath prefers $DAYPLAN_CONFIG, then the user config dir, then
// the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing defaults first if it does not exist.
// Environment variables override file values.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}
	cfg.normalize(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) normalize(dir string) {
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, DefaultLogName)
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		LogPath:    filepath.Join(dir, DefaultLogName),
		LogLevel:   "INFO",
		SeedDemo:   true,
		CellWidth:  8,
		CellHeight: 16,
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Open:      "enter",
			Confirm:   "enter",
			Cancel:    "esc",
			Calendar:  "c",
			PrevMonth: "[",
			NextMonth: "]",
			PrevDay:   "h",
			NextDay:   "l",
			Save:      "ctrl+s",
		},
	}
}
