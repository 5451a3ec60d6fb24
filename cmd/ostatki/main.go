// Package main provides the ostatki CLI: warehouse stock answers from a spreadsheet.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sklad/ostatki"
	"github.com/sklad/ostatki/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUserError
	}
	return exitSuccess
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	stdout     io.Writer
	stderr     io.Writer

	cfg       *appConfig
	logger    *slog.Logger
	inventory *ostatki.Inventory
	closeSrc  func() error
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      newViper(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "ostatki",
		Short: "Warehouse stock lookup over a spreadsheet",
		Long: `ostatki answers stock questions from the warehouse spreadsheet.

Available commands:
  list                 Show every item in stock
  name <term>          Find items whose name contains term
  producer <name>      Show items of one producer
  producers            List known producers
  serve                Serve the same queries over HTTP
  version              Print the version

The source is a CSV, TSV, LTSV, Parquet or XLSX file (optionally .gz, .bz2,
.xz or .zst compressed), a SQLite table or a PostgreSQL table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./ostatki.yaml)")
	flags.String("source", "", "spreadsheet file, or SQLite database with --table")
	flags.String("sheet", "", "XLSX worksheet (default: first sheet)")
	flags.String("table", "", "SQL table name for sqlite/postgres sources")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")
	flags.String("markup", "", "output markup: markdown, html, plain")
	_ = a.v.BindPFlag(cfgKeySourcePath, flags.Lookup("source"))
	_ = a.v.BindPFlag(cfgKeySourceSheet, flags.Lookup("sheet"))
	_ = a.v.BindPFlag(cfgKeySourceTable, flags.Lookup("table"))
	_ = a.v.BindPFlag(cfgKeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(cfgKeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(cfgKeyMarkup, flags.Lookup("markup"))

	root.AddCommand(
		newListCmd(a),
		newNameCmd(a),
		newProducerCmd(a),
		newProducersCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration, configures logging and opens the inventory.
func (a *app) setup(cmd *cobra.Command) error {
	loadDotEnv()

	cfg, err := loadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Setup(a.stderr, cfg.Log.Level, cfg.Log.Format)

	opts, err := cfg.renderOptions()
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.closeSrc = closeSrc

	inv, err := ostatki.New(src, cfg.engineConfig(), opts, a.logger)
	if err != nil {
		return errors.Join(err, a.close())
	}
	a.inventory = inv

	a.logger.Debug("configuration loaded",
		"source_kind", cfg.sourceKind(),
		"source", fmt.Sprint(src),
		"markup", opts.Markup.String(),
		"max_chunk_length", opts.MaxChunkLength,
	)
	return nil
}

func (a *app) close() error {
	if a.closeSrc == nil {
		return nil
	}
	err := a.closeSrc()
	a.closeSrc = nil
	return err
}
