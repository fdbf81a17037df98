package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/descent/format"
	"github.com/dhamidi/descent/msgpack"
)

var msgpackLog = commonlog.GetLogger("descent.msgpack")

func newMsgpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msgpack",
		Short: "Work with MessagePack data",
	}
	cmd.AddCommand(newMsgpackDumpCmd())
	return cmd
}

func newMsgpackDumpCmd() *cobra.Command {
	var (
		dumpFormat string
		maxDepth   int
		stream     bool
		looseKeys  bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a MessagePack file and print its values",
		Long: `Decode every value in a MessagePack file and print it.

With --stream the file is read element by element: arrays and maps are shown
as headers followed by their members, and each line starts with the offset of
the element. Use - to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			msgpackLog.Debugf("read %d bytes from %s", len(data), args[0])

			enc, err := format.New(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if stream {
				return dumpStream(cmd.OutOrStdout(), data, dumpFormat, enc)
			}

			values, err := msgpack.Decode(data,
				msgpack.WithMaxDepth(maxDepth),
				msgpack.WithStrictMapKeys(!looseKeys),
			)
			if err != nil {
				return err
			}
			msgpackLog.Infof("decoded %d values", len(values))
			if err := enc.Encode(values); err != nil {
				return fmt.Errorf("encode %s: %w", dumpFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json, yaml, cbor)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", msgpack.DefaultMaxDepth, "maximum nesting of arrays and maps")
	cmd.Flags().BoolVar(&stream, "stream", false, "print elements one at a time instead of decoding values")
	cmd.Flags().BoolVar(&looseKeys, "loose-keys", false, "accept non-string map keys")

	return cmd
}

func dumpStream(w io.Writer, data []byte, dumpFormat string, enc format.Encoder) error {
	dec := msgpack.NewDecoder(data)
	n := 0
	for {
		offset := dec.Offset()
		e, err := dec.Next()
		if errors.Is(err, io.EOF) {
			msgpackLog.Infof("read %d elements", n)
			return nil
		}
		if err != nil {
			msgpackLog.Errorf("stopped after %d elements: %s", n, err)
			return err
		}
		n++
		if dumpFormat == "line" {
			fmt.Fprintf(w, "0x%08X\t%s\n", offset, e)
			continue
		}
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode %s: %w", dumpFormat, err)
		}
	}
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
