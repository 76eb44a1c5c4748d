// SPDX-License-Identifier: Apache-2.0

// Command qextract extracts multiple-choice questions from exam text.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bancoquestoes/qextract/internal/classify"
	"github.com/bancoquestoes/qextract/internal/config"
	"github.com/bancoquestoes/qextract/internal/extraction"
	"github.com/bancoquestoes/qextract/internal/extraction/extractors"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "qextract",
		Short:        "Extract multiple-choice questions from exam documents",
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(
		newExtractCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newTaxonomyCmd(),
	)
	return cmd
}

// load reads the configuration and applies flag overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and pipeline. Logs
// always go to w, never to stdout, so that stdout stays machine-readable.
func (o *rootOptions) setup(w io.Writer) (*config.Config, *slog.Logger, *extraction.Pipeline, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cfg.NewLogger(w)

	pcfg := cfg.PipelineConfig(logger)
	if cfg.TaxonomyPath != "" {
		tax, err := classify.LoadTaxonomy(cfg.TaxonomyPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load taxonomy: %w", err)
		}
		pcfg.Taxonomy = tax
		logger.Info("custom taxonomy loaded", "path", cfg.TaxonomyPath, "disciplines", len(tax.Disciplines))
	}
	return cfg, logger, extractors.NewPipeline(pcfg), nil
}
