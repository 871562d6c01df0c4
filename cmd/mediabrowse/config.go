// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v3"
)

const (
	defaultPageSize     = 10
	defaultCacheEntries = 1000
)

// Config holds the settings of a browse run. Flags override the values
// read from the config file.
type Config struct {
	Catalog       string `yaml:"catalog,omitempty"`
	Scan          string `yaml:"scan,omitempty"`
	LoggingConfig string `yaml:"logging-config,omitempty"`
	PageSize      int    `yaml:"page-size,omitempty"`
	Search        string `yaml:"search,omitempty"`
	MetricsAddr   string `yaml:"metrics-addr,omitempty"`
	CacheEntries  int    `yaml:"cache-entries,omitempty"`
}

// Validate returns an error if the config cannot drive a run.
func (config Config) Validate() error {
	if config.Catalog == "" && config.Scan == "" {
		return errors.NotValidf("missing catalog or scan directory")
	}
	if config.Catalog != "" && config.Scan != "" {
		return errors.NotValidf("both catalog and scan directory")
	}
	if config.PageSize <= 0 {
		return errors.NotValidf("page size %d", config.PageSize)
	}
	if config.CacheEntries <= 0 {
		return errors.NotValidf("cache entries %d", config.CacheEntries)
	}
	return nil
}

func readConfigFile(path string) (Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Annotatef(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Annotatef(err, "parsing config %q", path)
	}
	return config, nil
}

// parseArgs builds the config from the command line, reading the config
// file named by --config first.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	var (
		configPath string
		flags      Config
	)
	f := gnuflag.NewFlagSet("mediabrowse", gnuflag.ContinueOnError)
	f.SetOutput(stderr)
	f.StringVar(&configPath, "config", "", "YAML file holding defaults for the other flags")
	f.StringVar(&flags.Catalog, "catalog", "", "YAML catalog of tracks to serve")
	f.StringVar(&flags.Scan, "scan", "", "directory of audio files to serve")
	f.StringVar(&flags.LoggingConfig, "logging-config", "", "logging configuration, for example <root>=DEBUG")
	f.IntVar(&flags.PageSize, "page-size", 0, "number of items read per page")
	f.StringVar(&flags.Search, "search", "", "text to search for once the library has been browsed")
	f.StringVar(&flags.MetricsAddr, "metrics-addr", "", "address on which to serve Prometheus metrics")
	f.IntVar(&flags.CacheEntries, "cache-entries", 0, "size of the network id cache")
	if err := f.Parse(true, args); err != nil {
		return Config{}, errors.Trace(err)
	}
	if extra := f.Args(); len(extra) > 0 {
		return Config{}, errors.Errorf("unrecognised arguments: %q", extra)
	}

	config := Config{
		PageSize:     defaultPageSize,
		CacheEntries: defaultCacheEntries,
	}
	if configPath != "" {
		file, err := readConfigFile(configPath)
		if err != nil {
			return Config{}, errors.Trace(err)
		}
		config = merge(config, file)
	}
	config = merge(config, flags)
	return config, errors.Trace(config.Validate())
}

// merge returns base with every non-zero field of override applied.
func merge(base, override Config) Config {
	if override.Catalog != "" {
		base.Catalog = override.Catalog
	}
	if override.Scan != "" {
		base.Scan = override.Scan
	}
	if override.LoggingConfig != "" {
		base.LoggingConfig = override.LoggingConfig
	}
	if override.PageSize != 0 {
		base.PageSize = override.PageSize
	}
	if override.Search != "" {
		base.Search = override.Search
	}
	if override.MetricsAddr != "" {
		base.MetricsAddr = override.MetricsAddr
	}
	if override.CacheEntries != 0 {
		base.CacheEntries = override.CacheEntries
	}
	return base
}
