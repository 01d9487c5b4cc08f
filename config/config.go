// Package config loads the engine settings from the environment and an optional file.
package config

import (
	"fmt"
	"strings"

	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const DefaultEnvPrefix = "GODECO"

const (
	keyLogLevel       = "log_level"
	keyInjectTag      = "inject_tag"
	keyOverrideFields = "override_fields"
	keyStrictMarkers  = "strict_markers"
)

type (
	// Settings drives the default behavior of the decoration engine.
	Settings struct {
		// LogLevel is a zerolog level name, "disabled" silences the engine.
		LogLevel string `mapstructure:"log_level"`
		// InjectTag is the struct tag key marking injectable fields, as in `godeco:"inject"`.
		InjectTag string `mapstructure:"inject_tag"`
		// OverrideFields allows injection into fields that already hold a value.
		OverrideFields bool `mapstructure:"override_fields"`
		// StrictMarkers restricts injection to tagged fields, even when a type tags none.
		StrictMarkers bool `mapstructure:"strict_markers"`
	}

	Options struct {
		prefix string
		file   string
	}
)

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithFile reads the settings from a file first, environment variables still win.
func WithFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.file = path
	}
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		LogLevel:  zerolog.LevelWarnValue,
		InjectTag: "godeco",
	}
}

func Load(opts ...option.Option[Options]) (*Settings, error) {
	options := option.Build(&Options{prefix: DefaultEnvPrefix}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// registering every key is what makes AutomaticEnv visible to Unmarshal
	defaults := Default()
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyInjectTag, defaults.InjectTag)
	v.SetDefault(keyOverrideFields, defaults.OverrideFields)
	v.SetDefault(keyStrictMarkers, defaults.StrictMarkers)

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s:\n\t%w", options.file, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q:\n\t%w", s.LogLevel, err)
	}
	if strings.TrimSpace(s.InjectTag) == "" {
		return fmt.Errorf("inject tag must not be empty")
	}
	return nil
}

// Level returns the zerolog level of the settings, warn if it cannot be parsed.
func (s *Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
