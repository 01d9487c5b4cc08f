// Command godeco-gen generates the proxies of the interfaces annotated with @proxy, and the
// registration of the functions annotated with @constructor.
//
// It is meant to be run from a go:generate directive, the generated file being written next
// to the file holding the directive:
//
//	//go:generate go run github.com/a-peyrard/godeco/cmd/godeco-gen
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	file     string
	output   string
	dryRun   bool
	verbose  bool
	patterns []string
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := options{patterns: []string{"./..."}}

	cmd := &cobra.Command{
		Use:   "godeco-gen [packages]",
		Short: "Generate godeco proxies and constructor registrations",
		Long: `Scans the packages of the module (./... by default) for interfaces annotated with @proxy
and functions annotated with @constructor, and writes <file>_gen.go next to the file
triggering the generation.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.patterns = args
			}
			return run(newLogger(opts.verbose), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", os.Getenv("GOFILE"), "file triggering the generation, $GOFILE by default")
	flags.StringVarP(&opts.output, "output", "o", "", "generated file, <file>_gen.go by default")
	flags.BoolVar(&opts.dryRun, "dry-run", os.Getenv("DRY_RUN") == "true", "write the generated file in /tmp")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log the scanned definitions")
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(logger zerolog.Logger, opts options) error {
	if opts.file == "" {
		return errors.New("no target file, run godeco-gen from a go:generate directive or use --file")
	}
	targetFile, err := filepath.Abs(opts.file)
	if err != nil {
		return fmt.Errorf("failed to resolve %s:\n\t%w", opts.file, err)
	}

	startScan := time.Now()
	moduleRoot := findModuleRoot(filepath.Dir(targetFile))
	definitions, err := scan(logger, moduleRoot, targetFile, opts.patterns)
	if err != nil {
		logger.Error().Err(err).Msg("Scan failed")
		return err
	}
	stopScan := time.Now()

	logger.Info().Msgf("🎯 %d proxies found in the module", len(definitions.Proxies))
	for _, proxy := range definitions.Proxies {
		logger.Debug().Msg(proxy.String())
	}
	logger.Info().Msgf("🎯 %d constructors found in the module", len(definitions.Constructors))
	for _, constructor := range definitions.Constructors {
		logger.Debug().Msg(constructor.String())
	}
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", stopScan.Sub(startScan))

	if definitions.Empty() {
		logger.Warn().Msg("Nothing to generate")
		return nil
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = filepath.Join(
			filepath.Dir(targetFile),
			strings.TrimSuffix(filepath.Base(targetFile), ".go")+"_gen.go",
		)
	}
	if opts.dryRun {
		outputPath = filepath.Join(os.TempDir(), filepath.Base(outputPath))
	}

	code, err := render(definitions)
	if err != nil {
		logger.Error().Err(err).Msg("Rendering failed")
		return err
	}
	if err := os.WriteFile(outputPath, code, 0o644); err != nil {
		logger.Error().Err(err).Msgf("Failed to write %s", outputPath)
		return err
	}
	logger.Info().Msgf("✅ Code generated successfully in %s", outputPath)
	return nil
}

func findModuleRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
