package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/nextferry/pkg/ferry"
	"github.com/travigo/nextferry/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

const (
	defaultServerURL    = "http://nextferry.appspot.com"
	defaultAppVersion   = "4.0"
	defaultTimezone     = "America/Los_Angeles"
	defaultTimeFormat   = "12"
	defaultBuffer       = "PT10M"
	defaultSyncInterval = "PT15M"
)

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
	Events   bool   `yaml:"events"`
}

type Config struct {
	ServerURL    string `yaml:"server_url"`
	AppVersion   string `yaml:"app_version"`
	Timezone     string `yaml:"timezone"`
	TimeFormat   string `yaml:"time_format"`
	Buffer       string `yaml:"buffer"`
	SyncInterval string `yaml:"sync_interval"`

	UseLocation bool   `yaml:"use_location"`
	Location    string `yaml:"location"`

	Redis RedisConfig `yaml:"redis"`
}

func Default() *Config {
	return &Config{
		ServerURL:    defaultServerURL,
		AppVersion:   defaultAppVersion,
		Timezone:     defaultTimezone,
		TimeFormat:   defaultTimeFormat,
		Buffer:       defaultBuffer,
		SyncInterval: defaultSyncInterval,
	}
}

// Load starts from the defaults, applies the YAML file at path if there is one, then NEXTFERRY_ environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		configYaml, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		decoder := yaml.NewDecoder(bytes.NewReader(configYaml))
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}

		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := cfg.applyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if env["SERVER_URL"] != "" {
		c.ServerURL = env["SERVER_URL"]
	}
	if env["APP_VERSION"] != "" {
		c.AppVersion = env["APP_VERSION"]
	}
	if env["TIMEZONE"] != "" {
		c.Timezone = env["TIMEZONE"]
	}
	if env["TIME_FORMAT"] != "" {
		c.TimeFormat = env["TIME_FORMAT"]
	}
	if env["BUFFER"] != "" {
		c.Buffer = env["BUFFER"]
	}
	if env["SYNC_INTERVAL"] != "" {
		c.SyncInterval = env["SYNC_INTERVAL"]
	}
	if env["USE_LOCATION"] != "" {
		c.UseLocation = env["USE_LOCATION"] == "true" || env["USE_LOCATION"] == "YES"
	}
	if env["LOCATION"] != "" {
		c.Location = env["LOCATION"]
	}

	if env["REDIS_ADDRESS"] != "" {
		c.Redis.Address = env["REDIS_ADDRESS"]
	}
	if env["REDIS_PASSWORD"] != "" {
		c.Redis.Password = env["REDIS_PASSWORD"]
	}
	if env["REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["REDIS_DATABASE"]); err == nil {
			c.Redis.Database = n
		} else {
			return err
		}
	}
	if env["REDIS_EVENTS"] != "" {
		c.Redis.Events = env["REDIS_EVENTS"] == "true" || env["REDIS_EVENTS"] == "YES"
	}

	return nil
}

func (c *Config) Validate() error {
	if c.TimeFormat != "12" && c.TimeFormat != "24" {
		return fmt.Errorf("time_format must be 12 or 24, got %q", c.TimeFormat)
	}
	if _, err := c.TimeLocation(); err != nil {
		return err
	}
	if _, err := c.BufferMinutes(); err != nil {
		return err
	}
	if _, err := c.SyncIntervalDuration(); err != nil {
		return err
	}
	if _, _, err := c.CurrentLocation(); err != nil {
		return err
	}

	return nil
}

func (c *Config) TwelveHour() bool {
	return c.TimeFormat == "12"
}

func (c *Config) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) BufferMinutes() (int, error) {
	buffer, err := parseDuration(c.Buffer)
	if err != nil {
		return 0, fmt.Errorf("buffer: %w", err)
	}

	return int(buffer.Minutes()), nil
}

func (c *Config) SyncIntervalDuration() (time.Duration, error) {
	interval, err := parseDuration(c.SyncInterval)
	if err != nil {
		return 0, fmt.Errorf("sync_interval: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("sync_interval must be positive, got %q", c.SyncInterval)
	}

	return interval, nil
}

// CurrentLocation is where travel times are requested from, only set when use_location is on
func (c *Config) CurrentLocation() (ferry.Location, bool, error) {
	if !c.UseLocation || strings.TrimSpace(c.Location) == "" {
		return ferry.Location{}, false, nil
	}

	location, err := ferry.ParseLocation(c.Location)
	if err != nil {
		return ferry.Location{}, false, err
	}

	return location, true, nil
}

func parseDuration(s string) (time.Duration, error) {
	duration, err := iso8601.ParseISO8601(s)
	if err != nil {
		return 0, err
	}

	// Day and month components are measured from a fixed reference date
	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	return duration.Shift(reference).Sub(reference), nil
}
