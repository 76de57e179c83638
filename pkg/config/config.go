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

var C Config

type Config struct {
	Prefix     string           `mapstructure:"prefix" yaml:"prefix"`
	Welcome    string           `mapstructure:"welcome" yaml:"welcome"`
	Discord    DiscordConfig    `mapstructure:"discord" yaml:"discord"`
	Moderation ModerationConfig `mapstructure:"moderation" yaml:"moderation"`
	Roles      []*RoleConfig    `mapstructure:"roles" yaml:"roles"`
	Giphy      GiphyConfig      `mapstructure:"giphy" yaml:"giphy"`
	Match      MatchConfig      `mapstructure:"match" yaml:"match"`
	Status     StatusConfig     `mapstructure:"status" yaml:"status"`
	Health     HealthConfig     `mapstructure:"health" yaml:"health"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Send       SendConfig       `mapstructure:"send" yaml:"send"`
}

type DiscordConfig struct {
	Token string `mapstructure:"token" yaml:"token"`
}

type ModerationConfig struct {
	BannedToken string `mapstructure:"bannedToken" yaml:"bannedToken"`
	// Warning is a format string receiving the author mention.
	Warning string `mapstructure:"warning" yaml:"warning"`
}

type RoleConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
	Role    string `mapstructure:"role" yaml:"role"`
}

type GiphyConfig struct {
	Origin  string        `mapstructure:"origin" yaml:"origin"`
	APIKey  string        `mapstructure:"apiKey" yaml:"apiKey"`
	Limit   int           `mapstructure:"limit" yaml:"limit"`
	Rating  string        `mapstructure:"rating" yaml:"rating"`
	Lang    string        `mapstructure:"lang" yaml:"lang"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type MatchConfig struct {
	Origin   string        `mapstructure:"origin" yaml:"origin"`
	Site     string        `mapstructure:"site" yaml:"site"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Limit    int           `mapstructure:"limit" yaml:"limit"`
}

type StatusConfig struct {
	Dir      string           `mapstructure:"dir" yaml:"dir"`
	Mode     string           `mapstructure:"mode" yaml:"mode"`
	Subjects []*SubjectConfig `mapstructure:"subjects" yaml:"subjects"`
}

type SubjectConfig struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Owner string `mapstructure:"owner" yaml:"owner"`
}

type HealthConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

type LogConfig struct {
	Development bool `mapstructure:"development" yaml:"development"`
}

type SendConfig struct {
	Rate  float64 `mapstructure:"rate" yaml:"rate"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

func init() {
	viper.SetDefault("prefix", "!")
	viper.SetDefault("welcome", "Welcome to the server %s")

	viper.SetDefault("discord.token", "")

	viper.SetDefault("moderation.bannedToken", "zee")
	viper.SetDefault("moderation.warning", "%s - wag mo banggitin yan!")

	viper.SetDefault("roles", []map[string]any{
		{"command": "valorant", "role": "Valorant"},
		{"command": "tft", "role": "Teamfight Tactics"},
		{"command": "lol", "role": "League of Legends"},
	})

	viper.SetDefault("giphy.origin", "https://api.giphy.com/")
	viper.SetDefault("giphy.apiKey", "")
	viper.SetDefault("giphy.limit", 25)
	viper.SetDefault("giphy.rating", "g")
	viper.SetDefault("giphy.lang", "en")
	viper.SetDefault("giphy.timeout", 15*time.Second)

	viper.SetDefault("match.origin", "https://vlrggapi.vercel.app/")
	viper.SetDefault("match.site", "https://www.vlr.gg")
	viper.SetDefault("match.interval", 60*time.Second)
	viper.SetDefault("match.timeout", 15*time.Second)
	viper.SetDefault("match.limit", 3)

	viper.SetDefault("status.dir", "./data")
	viper.SetDefault("status.mode", "fixed")
	viper.SetDefault("status.subjects", nil)

	viper.SetDefault("health.port", 8080)

	viper.SetDefault("log.development", false)

	viper.SetDefault("send.rate", 5.0)
	viper.SetDefault("send.burst", 5)
}

// Load reads .env, the optional config file and the environment into C.
func Load() error {
	// .env is optional
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}
	err = viper.Unmarshal(&C)
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if C.Match.Interval <= 0 {
		return fmt.Errorf("match.interval must be positive, got %s", C.Match.Interval)
	}
	return nil
}
