package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sklad/ostatki"
	"github.com/spf13/viper"
)

const (
	configFileName = "ostatki"
	configFileType = "yaml"
	envPrefix      = "OSTATKI"

	// Config keys.
	cfgKeySourceKind  = "source.kind"
	cfgKeySourcePath  = "source.path"
	cfgKeySourceSheet = "source.sheet"
	cfgKeySourceTable = "source.table"
	cfgKeySourceDSN   = "source.dsn"
	cfgKeyMaxChunk    = "render.max_chunk_length"
	cfgKeyMarkup      = "render.markup"
	cfgKeyLogLevel    = "log.level"
	cfgKeyLogFormat   = "log.format"
	cfgKeyServerAddr  = "server.addr"
	cfgKeyTimeout     = "server.timeout"

	sourceKindFile     = "file"
	sourceKindSQLite   = "sqlite"
	sourceKindPostgres = "postgres"
)

// appConfig is the decoded configuration of the CLI.
type appConfig struct {
	Source    sourceConfig           `mapstructure:"source"`
	Labels    ostatki.Labels         `mapstructure:"labels"`
	Producers []ostatki.ProducerRule `mapstructure:"producers"`
	Render    renderConfig           `mapstructure:"render"`
	Log       logConfig              `mapstructure:"log"`
	Server    serverConfig           `mapstructure:"server"`
}

type sourceConfig struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
	Table string `mapstructure:"table"`
	DSN   string `mapstructure:"dsn"`
}

type renderConfig struct {
	MaxChunkLength int              `mapstructure:"max_chunk_length"`
	Markup         string           `mapstructure:"markup"`
	Messages       ostatki.Messages `mapstructure:"messages"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type serverConfig struct {
	Addr    string        `mapstructure:"addr"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// newViper returns a viper instance with every default set, so that
// OSTATKI_* environment variables can override any key.
func newViper() *viper.Viper {
	v := viper.New()

	labels := ostatki.DefaultLabels()
	v.SetDefault(cfgKeySourceKind, "")
	v.SetDefault(cfgKeySourcePath, "")
	v.SetDefault(cfgKeySourceSheet, "")
	v.SetDefault(cfgKeySourceTable, "")
	v.SetDefault(cfgKeySourceDSN, "")
	v.SetDefault("labels.name", labels.Name)
	v.SetDefault("labels.quantity", labels.Quantity)
	v.SetDefault("labels.material", labels.Material)
	v.SetDefault("labels.length", labels.Length)
	v.SetDefault("labels.width", labels.Width)
	v.SetDefault("labels.height", labels.Height)
	v.SetDefault("labels.producer_keywords", labels.ProducerKeywords)
	v.SetDefault("producers", ostatki.DefaultProducerRules())
	v.SetDefault(cfgKeyMaxChunk, ostatki.DefaultMaxChunkLength)
	v.SetDefault(cfgKeyMarkup, ostatki.MarkupMarkdown.String())
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetDefault(cfgKeyServerAddr, ":8080")
	v.SetDefault(cfgKeyTimeout, 30*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadDotEnv loads .env from the working directory when present.
// Variables already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load() // Missing .env is not an error
}

// loadConfig reads the config file into v. With an explicit path the file must exist;
// otherwise ostatki.yaml is looked up in the working directory and a missing file is not an error.
func loadConfig(v *viper.Viper, path string) (*appConfig, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// engineConfig returns the engine part of the configuration.
func (c *appConfig) engineConfig() ostatki.Config {
	return ostatki.Config{
		Labels:    c.Labels,
		Producers: c.Producers,
	}
}

// renderOptions returns the render part of the configuration.
func (c *appConfig) renderOptions() (ostatki.RenderOptions, error) {
	markup, err := ostatki.ParseMarkup(c.Render.Markup)
	if err != nil {
		return ostatki.RenderOptions{}, err
	}
	return ostatki.NewRenderOptions().
		WithMaxChunkLength(c.Render.MaxChunkLength).
		WithMarkup(markup).
		WithMessages(c.Render.Messages), nil
}

// sourceKind returns the configured kind, or infers it from the other source keys.
func (c *appConfig) sourceKind() string {
	if kind := strings.ToLower(strings.TrimSpace(c.Source.Kind)); kind != "" {
		return kind
	}
	if c.Source.DSN != "" {
		return sourceKindPostgres
	}
	switch strings.ToLower(filepath.Ext(c.Source.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sourceKindSQLite
	}
	return sourceKindFile
}

// openSource builds the configured data source. The returned close func is never nil.
func openSource(ctx context.Context, c *appConfig) (ostatki.Source, func() error, error) {
	noop := func() error { return nil }

	switch kind := c.sourceKind(); kind {
	case sourceKindFile:
		if c.Source.Path == "" {
			return nil, noop, errors.New("no spreadsheet configured: set --source or source.path")
		}
		src, err := ostatki.NewSourceBuilder().
			AddPath(c.Source.Path).
			Sheet(c.Source.Sheet).
			Build(ctx)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil

	case sourceKindSQLite:
		src, err := ostatki.OpenSQLite(c.Source.Path, c.Source.Table)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	case sourceKindPostgres:
		src, err := ostatki.OpenPostgres(ctx, c.Source.DSN, c.Source.Table)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown source kind %q (valid: file, sqlite, postgres)", kind)
	}
}
