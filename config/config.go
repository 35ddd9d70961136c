// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/SladkyCitron/slogcolor"
	"github.com/adrg/xdg"
	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/choria-io/updater/engine"
	iu "github.com/choria-io/updater/internal/util"
	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/updater"
)

const (
	DefaultUserAgent = "choria-updater"
	DefaultLogLevel  = "warn"

	TextLogFormat  = "text"
	ColorLogFormat = "color"
	JSONLogFormat  = "json"
)

// Config holds the updater configuration
type Config struct {
	// DocumentsDirectory is where the updater directory holding stored archives is created.
	// Defaults to the user documents directory.
	DocumentsDirectory string `yaml:"documents_directory"`

	// ScratchDirectory holds downloads and extractions in progress, it should be on the same
	// volume as DocumentsDirectory to avoid copying archives into place
	ScratchDirectory string `yaml:"scratch_directory"`

	// Extractor is the extractor provider to use, zip or unzip. The most preferred available one is used when unset.
	Extractor string `yaml:"extractor"`

	// UnzipCommand is the command line used by the unzip extractor
	UnzipCommand string `yaml:"unzip_command"`

	// ExtractTimeout bounds a single run of the unzip extractor (e.g. "2m")
	ExtractTimeout         string `yaml:"extract_timeout"`
	extractTimeoutDuration time.Duration

	// BackupExclusion is how stored archives are excluded from backups
	// Valid values: xattr, cachedir, none
	// xattr is the default on Linux and macOS, it needs a filesystem supporting user extended
	// attributes and downloads fail with a metadata error without one
	BackupExclusion string `yaml:"backup_exclusion"`

	// HttpTimeout bounds an entire download, unlimited when unset
	HttpTimeout         string `yaml:"http_timeout"`
	httpTimeoutDuration time.Duration

	// UserAgent is sent with every download
	UserAgent string `yaml:"user_agent"`

	// CleanupConcurrency is how many paths are removed at the same time
	CleanupConcurrency int `yaml:"cleanup_concurrency"`

	// MonitorPort is the port to listen on for accessing Prometheus stats
	MonitorPort int `yaml:"monitor_port"`

	// LogLevel is the log level to use
	// Valid values: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log output, text and color are only used on terminals
	// Valid values: text, color, json
	LogFormat string `yaml:"log_format"`
}

// DefaultConfigFiles are the locations searched by Load, in order
func DefaultConfigFiles() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "choria", "updater", "config.yaml"),
		"/etc/choria/updater/config.yaml",
	}
}

// Load reads the configuration from path, when path is empty the default locations are tried
// and defaults are used if none exist
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, f := range DefaultConfigFiles() {
		cfg, err := loadFile(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return cfg, err
	}

	return ParseConfig([]byte("{}"))
}

func loadFile(path string) (*Config, error) {
	c, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(c)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return cfg, nil
}

func ParseConfig(c []byte) (*Config, error) {
	cfg := &Config{
		UserAgent:          DefaultUserAgent,
		CleanupConcurrency: updater.DefaultCleanupConcurrency,
		LogLevel:           DefaultLogLevel,
	}

	err := yaml.Unmarshal(c, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ExtractTimeout != "" {
		cfg.extractTimeoutDuration, err = fisk.ParseDuration(cfg.ExtractTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid extract_timeout: %w", err)
		}
	}

	if cfg.HttpTimeout != "" {
		cfg.httpTimeoutDuration, err = fisk.ParseDuration(cfg.HttpTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http_timeout: %w", err)
		}
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.extractTimeoutDuration < 0 {
		return fmt.Errorf("extract_timeout cannot be negative")
	}

	if c.httpTimeoutDuration < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}

	if c.CleanupConcurrency < 1 {
		return fmt.Errorf("cleanup_concurrency must be at least 1")
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("monitor_port must be between 0 and 65535")
	}

	switch c.BackupExclusion {
	case "", engine.XattrExclusion, engine.CacheDirExclusion, engine.NoExclusion:
		// valid
	default:
		return fmt.Errorf("backup_exclusion must be one of: xattr, cachedir, none")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}

	switch c.LogFormat {
	case "", TextLogFormat, ColorLogFormat, JSONLogFormat:
		// valid
	default:
		return fmt.Errorf("log_format must be one of: text, color, json")
	}

	return nil
}

// ExtractTimeoutDuration is the parsed extract_timeout
func (c *Config) ExtractTimeoutDuration() time.Duration { return c.extractTimeoutDuration }

// HttpTimeoutDuration is the parsed http_timeout
func (c *Config) HttpTimeoutDuration() time.Duration { return c.httpTimeoutDuration }

// UpdaterOptions are the options for updater.New matching the configuration
func (c *Config) UpdaterOptions() []updater.Option {
	opts := []updater.Option{
		updater.WithExtractor(c.Extractor),
		updater.WithExtractorOptions(model.ExtractorOptions{
			Command: c.UnzipCommand,
			Timeout: c.extractTimeoutDuration,
		}),
		updater.WithBackupExclusion(c.BackupExclusion),
		updater.WithUserAgent(c.UserAgent),
		updater.WithTimeout(c.httpTimeoutDuration),
		updater.WithCleanupConcurrency(c.CleanupConcurrency),
	}

	if c.DocumentsDirectory != "" {
		opts = append(opts, updater.WithDocumentsDirectory(c.DocumentsDirectory))
	}

	if c.ScratchDirectory != "" {
		opts = append(opts, updater.WithScratchDirectory(c.ScratchDirectory))
	}

	return opts
}

func (c *Config) NewLogger() (model.Logger, error) {
	if c.LogFormat == JSONLogFormat {
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}

		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(level)

		return updater.NewLogrusLogger(logrus.NewEntry(log)), nil
	}

	var level slog.Level

	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	if c.LogFormat != TextLogFormat && iu.IsTerminal() {
		return updater.NewSlogLogger(
			slog.New(
				slogcolor.NewHandler(os.Stderr, &slogcolor.Options{
					Level: level,
				}))), nil
	}

	return updater.NewSlogLogger(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))), nil
}
