package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "json"
	Path   string `mapstructure:"path"`
	Watch  bool   `mapstructure:"watch"`
}

type ClipboardConfig struct {
	OSC52 bool `mapstructure:"osc52"` // fall back to terminal escape when no system clipboard
}

type NotificationsConfig struct {
	Desktop bool `mapstructure:"desktop"`
}

type ToastConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
	File   string `mapstructure:"file"`
}

type Config struct {
	Theme         string              `mapstructure:"theme"`
	Store         StoreConfig         `mapstructure:"store"`
	Clipboard     ClipboardConfig     `mapstructure:"clipboard"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Toast         ToastConfig         `mapstructure:"toast"`
	Log           LogConfig           `mapstructure:"log"`
}

func Default() Config {
	data, state := dataDir(), stateDir()
	return Config{
		Theme: "theme-default",
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   filepath.Join(data, "noted.db"),
			Watch:  true,
		},
		Clipboard:     ClipboardConfig{OSC52: true},
		Notifications: NotificationsConfig{Desktop: false},
		Toast:         ToastConfig{Duration: 2 * time.Second},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(state, "noted.log"),
		},
	}
}

func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}

func dataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "noted")
	}
	return filepath.Join(home(), ".local", "share", "noted")
}

func stateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "noted")
	}
	return filepath.Join(home(), ".local", "state", "noted")
}

// DefaultPath is ~/.config/noted/config.yaml (or under XDG_CONFIG_HOME).
func DefaultPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "noted", "config.yaml")
	}
	return filepath.Join(home(), ".config", "noted", "config.yaml")
}

// Load reads the YAML config at path (DefaultPath when empty). A missing
// file is fine; NOTED_* environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("noted")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.path", "")
	v.SetDefault("store.watch", cfg.Store.Watch)
	v.SetDefault("clipboard.osc52", cfg.Clipboard.OSC52)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("toast.duration", cfg.Toast.Duration)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case "sqlite", "json":
	default:
		return cfg, fmt.Errorf("store.driver: unknown driver %q (want sqlite|json)", cfg.Store.Driver)
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = defaultStorePath(cfg.Store.Driver)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Log.File = expandHome(cfg.Log.File)
	if cfg.Toast.Duration <= 0 {
		cfg.Toast.Duration = Default().Toast.Duration
	}
	return cfg, nil
}

func defaultStorePath(driver string) string {
	if driver == "json" {
		return filepath.Join(dataDir(), "noted.json")
	}
	return filepath.Join(dataDir(), "noted.db")
}

func expandHome(p string) string {
	if p == "~" {
		return home()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home(), p[2:])
	}
	return p
}
