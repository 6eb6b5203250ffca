package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Journal JournalConfig
	UI      UIConfig
	Input   InputConfig
	Log     LogConfig
}

// JournalConfig holds the input journal sqlite settings.
type JournalConfig struct {
	Path    string
	Enabled bool
}

// UIConfig holds the layout of the demo view.
type UIConfig struct {
	BoxWidth    int    `mapstructure:"box_width"`
	BoxHeight   int    `mapstructure:"box_height"`
	BoxLabel    string `mapstructure:"box_label"`
	PanelLeft   int    `mapstructure:"panel_left"`
	PanelTop    int    `mapstructure:"panel_top"`
	PanelWidth  int    `mapstructure:"panel_width"`
	PanelHeight int    `mapstructure:"panel_height"`
	// MouseMode is "cell" (motion while a button is held) or "all".
	MouseMode string `mapstructure:"mouse_mode"`
}

// InputConfig holds extra input sources.
type InputConfig struct {
	// TouchFeed is a file or FIFO of JSON-lines touch frames. Empty disables touch.
	TouchFeed string `mapstructure:"touch_feed"`
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	Level string
	Path  string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "draggable")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal.path", filepath.Join(dataDir(), "journal.db"))
	v.SetDefault("journal.enabled", true)
	v.SetDefault("ui.box_width", 20)
	v.SetDefault("ui.box_height", 5)
	v.SetDefault("ui.box_label", "the snozzberries taste like snozzberries")
	v.SetDefault("ui.panel_left", 2)
	v.SetDefault("ui.panel_top", 1)
	v.SetDefault("ui.panel_width", 72)
	v.SetDefault("ui.panel_height", 20)
	v.SetDefault("ui.mouse_mode", "cell")
	v.SetDefault("input.touch_feed", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "draggable.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix DRAGGABLE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DRAGGABLE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "draggable"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DRAGGABLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects layouts the view cannot draw.
func (c Config) Validate() error {
	if c.UI.BoxWidth < 3 || c.UI.BoxHeight < 3 {
		return fmt.Errorf("ui: box must be at least 3x3, got %dx%d", c.UI.BoxWidth, c.UI.BoxHeight)
	}
	if c.UI.PanelWidth < c.UI.BoxWidth+2 || c.UI.PanelHeight < c.UI.BoxHeight+2 {
		return fmt.Errorf("ui: panel %dx%d cannot hold box %dx%d",
			c.UI.PanelWidth, c.UI.PanelHeight, c.UI.BoxWidth, c.UI.BoxHeight)
	}
	if c.UI.PanelLeft < 0 || c.UI.PanelTop < 0 {
		return fmt.Errorf("ui: panel offset must not be negative, got (%d, %d)", c.UI.PanelLeft, c.UI.PanelTop)
	}
	switch c.UI.MouseMode {
	case "cell", "all":
	default:
		return fmt.Errorf("ui: unknown mouse_mode %q", c.UI.MouseMode)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("DRAGGABLE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "draggable", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("ui.box_width", cfg.UI.BoxWidth)
	v.Set("ui.box_height", cfg.UI.BoxHeight)
	v.Set("ui.box_label", cfg.UI.BoxLabel)
	v.Set("ui.panel_left", cfg.UI.PanelLeft)
	v.Set("ui.panel_top", cfg.UI.PanelTop)
	v.Set("ui.panel_width", cfg.UI.PanelWidth)
	v.Set("ui.panel_height", cfg.UI.PanelHeight)
	v.Set("ui.mouse_mode", cfg.UI.MouseMode)
	v.Set("input.touch_feed", cfg.Input.TouchFeed)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
