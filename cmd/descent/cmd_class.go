package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/descent/classfile"
	"github.com/dhamidi/descent/format"
)

var classLog = commonlog.GetLogger("descent.class")

func newClassCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Work with JVM class files",
	}
	cmd.AddCommand(newClassDumpCmd())
	cmd.AddCommand(newClassDescriptorCmd())
	return cmd
}

func newClassDumpCmd() *cobra.Command {
	var (
		dumpFormat string
		raw        bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the structure of a .class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			cf, err := classfile.ParseBytes(data, classfile.WithAttributes(!raw))
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			classLog.Debugf("parsed %s: %d constants, %d fields, %d methods",
				cf.ClassName(), len(cf.ConstantPool), len(cf.Fields), len(cf.Methods))
			if err := enc.Encode(cf.Summary()); err != nil {
				return fmt.Errorf("encode %s: %w", dumpFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json, yaml, cbor)")
	cmd.Flags().BoolVar(&raw, "raw", false, "do not decode attributes")

	return cmd
}

func newClassDescriptorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor <descriptor>",
		Short: "Explain a field or method descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := args[0]
			var (
				text fmt.Stringer
				err  error
			)
			if strings.HasPrefix(desc, "(") {
				text, err = classfile.ParseMethodDescriptor(desc)
			} else {
				text, err = classfile.ParseFieldDescriptor(desc)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
