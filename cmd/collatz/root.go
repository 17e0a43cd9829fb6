package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gliu20/collatz-encoder/endian"
	"github.com/gliu20/collatz-encoder/internal/config"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	logFormat  string
	byteOrder  string
	noArena    bool
	verify     bool

	cfg    config.Config
	logger *slog.Logger
}

func run(args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	root := a.newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		logger := a.logger
		if logger == nil {
			logger = newLogger(errOut, slog.LevelError, "text")
		}
		logger.Error("collatz failed", slog.String("error", err.Error()))

		return err
	}

	return nil
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "collatz",
		Short: "Encode files as Collatz trajectories",
		Long: `collatz reads a file as one unsigned integer and writes the trajectory of
that integer under the shortcut Collatz map. decode reverses the process.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              printUsage,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&a.byteOrder, "byte-order", "", "limb byte order: little or big")
	flags.BoolVar(&a.noArena, "no-arena", false, "disable limb buffer recycling")

	root.AddCommand(
		a.newEncodeCmd(),
		a.newDecodeCmd(),
		a.newVerifyCmd(),
		a.newSelfTestCmd(),
		a.newConfigCmd(),
	)

	return root
}

// setup loads the config file and applies the flags that were set on top.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("byte-order") {
		cfg.ByteOrder = a.byteOrder
	}
	if flags.Changed("no-arena") {
		cfg.Arena.Enabled = !a.noArena
	}
	if flags.Lookup("verify") != nil && flags.Changed("verify") {
		cfg.Verify = a.verify
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	a.cfg = cfg
	a.logger = newLogger(a.errOut, level, cfg.Log.Format)
	a.logger.Debug("configuration loaded",
		slog.String("config", a.configPath),
		slog.String("byte_order", endian.Name(cfg.Engine())),
		slog.Bool("native_little_endian", endian.IsNativeLittleEndian()),
		slog.Bool("arena", cfg.Arena.Enabled),
		slog.Bool("verify", cfg.Verify))

	return nil
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// printUsage is the fallback for unknown subcommands and wrong argument
// counts. It never fails the command.
func printUsage(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.HasParent() {
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %q\n", args[0])
	}

	return cmd.Usage()
}
