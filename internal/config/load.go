package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the typed view of everything a sweep needs.
type Config struct {
	Executable    string              `mapstructure:"executable"`
	Steps         []int64             `mapstructure:"steps"`
	Threads       ThreadsConfig       `mapstructure:"threads"`
	Marker        string              `mapstructure:"marker"`
	Timeout       time.Duration       `mapstructure:"timeout"`
	Chart         ChartConfig         `mapstructure:"chart"`
	Store         StoreConfig         `mapstructure:"store"`
	MetricsAddr   string              `mapstructure:"metrics_addr"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Verbose       bool                `mapstructure:"verbose"`
	LogFile       string              `mapstructure:"log_file"`
}

type ThreadsConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type ChartConfig struct {
	Output string  `mapstructure:"output"`
	Show   bool    `mapstructure:"show"`
	Width  float64 `mapstructure:"width"`  // inches
	Height float64 `mapstructure:"height"` // inches
}

type StoreConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"` // file path for json/sqlite, DSN for postgres
	Save bool   `mapstructure:"save"`
}

type NotificationsConfig struct {
	Slack SlackConfig `mapstructure:"slack"`
}

type SlackConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	WebhookURL string `mapstructure:"webhook_url"`
}

// SetDefaults registers the built-in configuration on the global viper,
// plus Slack settings picked up from SLACK_WEBHOOK_URL.
func SetDefaults() {
	setDefaults(viper.GetViper())

	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		viper.SetDefault("notifications.slack.enabled", true)
		viper.SetDefault("notifications.slack.webhook_url", url)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("executable", "./pi_calc")
	v.SetDefault("steps", []int64{100_000_000, 1_000_000_000, 3_000_000_000})
	v.SetDefault("threads.min", 1)
	v.SetDefault("threads.max", 50)
	v.SetDefault("marker", "Czas")
	v.SetDefault("timeout", "0s")

	v.SetDefault("chart.output", "performance_chart.png")
	v.SetDefault("chart.show", true)
	v.SetDefault("chart.width", 12.0)
	v.SetDefault("chart.height", 7.0)

	v.SetDefault("store.type", "json")
	v.SetDefault("store.path", "")
	v.SetDefault("store.save", true)

	v.SetDefault("metrics_addr", "")
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")

	v.SetDefault("notifications.slack.enabled", false)
	v.SetDefault("notifications.slack.webhook_url", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; the defaults apply.
func Load(cfgFile string) error {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SCALEBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Get decodes the current viper state into a Config and validates it.
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteDefault writes the built-in defaults to path unless it already
// exists. Environment variables, flags and loaded files are not included.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	v := viper.New()
	setDefaults(v)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
