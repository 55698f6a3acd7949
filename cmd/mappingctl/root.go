package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/mapping/compiler/build"
	"github.com/syssam/mapping/compiler/load"
	"github.com/syssam/mapping/model"
	"github.com/syssam/mapping/snapshot"
)

var (
	logLevel string
	strict   bool
	infer    bool
	workers  int

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:           "mappingctl",
	Short:         "Inspect entity association mappings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&strict, "strict", false, "reject unknown cascade keywords")
	flags.BoolVar(&infer, "infer", false, "infer missing targets and referenced properties")
	flags.IntVarP(&workers, "workers", "w", 0, "verification workers (default GOMAXPROCS)")

	rootCmd.AddCommand(inspectCmd, cascadeCmd, snapshotCmd, exportCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// snapshotExt lists the extensions of msgpack snapshot files.
var snapshotExt = map[string]bool{".msgpack": true, ".mpk": true}

// loadContext returns the mapping context of a mapping file or a
// snapshot.
func loadContext(ctx context.Context, path string) (*model.Context, error) {
	if snapshotExt[strings.ToLower(filepath.Ext(path))] {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return snapshot.Decode(data)
	}
	schemas, err := load.LoadFile(path)
	if err != nil {
		return nil, err
	}
	opts := []build.Option{build.WithLogger(logger), build.WithInference(infer)}
	if strict {
		opts = append(opts, build.WithStrictCascade())
	}
	if workers > 0 {
		opts = append(opts, build.WithWorkers(workers))
	}
	b, err := build.New(opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, schemas)
}
