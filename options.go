package godeco

import (
	"os"
	"sync"
	"time"

	"github.com/a-peyrard/godeco/config"
	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
)

// Options configures a generator, and the chains built with it.
type Options struct {
	settings     *config.Settings
	logger       *zerolog.Logger
	cache        *Cache
	constructors *Constructors
	generator    Generator

	injectTag     *string
	override      *bool
	strictMarkers *bool
}

// WithSettings replaces the settings loaded from the environment.
func WithSettings(settings *config.Settings) option.Option[Options] {
	return func(opts *Options) {
		opts.settings = settings
	}
}

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = &logger
	}
}

// WithCache isolates the synthesized shapes in the given cache instead of the process wide one.
func WithCache(cache *Cache) option.Option[Options] {
	return func(opts *Options) {
		opts.cache = cache
	}
}

func WithConstructors(constructors *Constructors) option.Option[Options] {
	return func(opts *Options) {
		opts.constructors = constructors
	}
}

// WithGenerator plugs another generation strategy into a chain.
func WithGenerator(generator Generator) option.Option[Options] {
	return func(opts *Options) {
		opts.generator = generator
	}
}

// WithInjectTag sets the struct tag key marking injectable fields.
func WithInjectTag(tag string) option.Option[Options] {
	return func(opts *Options) {
		opts.injectTag = &tag
	}
}

// WithOverride allows the delegate to replace values already held by injectable fields.
func WithOverride(override bool) option.Option[Options] {
	return func(opts *Options) {
		opts.override = &override
	}
}

// WithStrictMarkers restricts injection to tagged fields.
func WithStrictMarkers(strict bool) option.Option[Options] {
	return func(opts *Options) {
		opts.strictMarkers = &strict
	}
}

var loadSettings = sync.OnceValue(func() *config.Settings {
	settings, err := config.Load()
	if err != nil {
		defaults := config.Default()
		logger := newLogger(defaults)
		logger.Warn().Err(err).Msg("Invalid godeco settings, using defaults")
		return defaults
	}
	return settings
})

func newLogger(settings *config.Settings) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(settings.Level()).
		With().
		Timestamp().
		Str("component", "godeco").
		Logger()
}

func buildOptions(opts ...option.Option[Options]) *Options {
	options := option.Build(&Options{}, opts...)

	if options.settings == nil {
		options.settings = loadSettings()
	}
	if options.logger == nil {
		logger := newLogger(options.settings)
		options.logger = &logger
	}
	if options.cache == nil {
		options.cache = DefaultCache()
	}
	if options.constructors == nil {
		options.constructors = DefaultConstructors()
	}
	if options.injectTag == nil {
		options.injectTag = &options.settings.InjectTag
	}
	if options.override == nil {
		options.override = &options.settings.OverrideFields
	}
	if options.strictMarkers == nil {
		options.strictMarkers = &options.settings.StrictMarkers
	}
	return options
}
