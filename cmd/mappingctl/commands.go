package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/mapping/compiler/load"
	"github.com/syssam/mapping/schema/cascade"
	"github.com/syssam/mapping/snapshot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the entities and resolved associations of a mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mc, err := loadContext(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeInspect(cmd.OutOrStdout(), mc)
	},
}

var cascadeCmd = &cobra.Command{
	Use:   "cascade <file> <entity> <operation>",
	Short: "List the associations an operation on an entity cascades through",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := cascade.ParseType(args[2])
		if err != nil {
			return err
		}
		mc, err := loadContext(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		targets, err := mc.CascadeTargets(args[1], op)
		if err != nil {
			return err
		}
		return writeCascade(cmd.OutOrStdout(), args[1], op, targets)
	},
}

var output string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <file>",
	Short: "Build a mapping and write its msgpack snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mc, err := loadContext(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := snapshot.Encode(mc)
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", output, "bytes", len(data))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Convert a mapping file to YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas, err := load.LoadFile(args[0])
		if err != nil {
			return err
		}
		data, err := load.MarshalYAML(schemas)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
}
