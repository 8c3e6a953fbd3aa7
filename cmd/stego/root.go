package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/mark"
)

// app carries the flags shared by all subcommands.
type app struct {
	startBit int
	stride   int
	mode     string
	escape   bool
	logLevel string

	out io.Writer
	log *zap.Logger
}

func (a *app) codecOptions() ([]stego.Option, error) {
	mode, err := stego.ParseMode(a.mode)
	if err != nil {
		return nil, err
	}
	return []stego.Option{
		stego.WithStartBit(a.startBit),
		stego.WithStride(a.stride),
		stego.WithMode(mode),
	}, nil
}

func (a *app) framing() mark.Option {
	if a.escape {
		return mark.WithEscape()
	}
	return mark.WithoutEscape()
}

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "stego",
		Short:        "Hide and recover payloads in the bits of any file",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			level, err := zapcore.ParseLevel(a.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			a.log, err = newLogger(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&a.startBit, "start-bit", 0, "first carrier bit to use (bit 0 is the MSB of the first byte)")
	flags.IntVar(&a.stride, "stride", stego.DefaultStride, "bits between two payload bits (seed in enhanced mode)")
	flags.StringVar(&a.mode, "mode", "simple", "stride mode (simple, enhanced)")
	flags.BoolVar(&a.escape, "escape", false, "byte-stuff the payload so it may contain 0x03")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newHideCommand(a),
		newExtractCommand(a),
		newCapacityCommand(a),
		newServeCommand(a),
	)
	return root
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	return logger, nil
}
