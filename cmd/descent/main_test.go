package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassDescriptor(t *testing.T) {
	out, err := run(t, newClassCmd(), "descriptor", "([ILjava/lang/String;)J")
	require.NoError(t, err)
	assert.Equal(t, "([]int, java.lang.String) long\n", out)

	_, err = run(t, newClassCmd(), "descriptor", "Lfoo")
	assert.ErrorContains(t, err, "invalid descriptor at offset 1")
}

func TestMsgpackDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.msgpack")
	require.NoError(t, os.WriteFile(path, []byte{0x92, 0x01, 0xa1, 'x'}, 0o644))

	t.Run("tree", func(t *testing.T) {
		out, err := run(t, newMsgpackCmd(), "dump", path)
		require.NoError(t, err)
		assert.Equal(t, "array(2)\n  uint(1)\n  str(\"x\")\n", out)
	})

	t.Run("stream", func(t *testing.T) {
		out, err := run(t, newMsgpackCmd(), "dump", "--stream", path)
		require.NoError(t, err)
		want := "0x00000000\tarray(2)\n" +
			"0x00000001\tuint(1)\n" +
			"0x00000002\tstr(\"x\")\n"
		assert.Equal(t, want, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, newMsgpackCmd(), "dump", "-f", "json", path)
		require.NoError(t, err)
		assert.JSONEq(t, `[[1, "x"]]`, out)
	})

	t.Run("truncated input", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.msgpack")
		require.NoError(t, os.WriteFile(bad, []byte{0x92, 0x01}, 0o644))
		_, err := run(t, newMsgpackCmd(), "dump", bad)
		assert.ErrorContains(t, err, "not enough data at offset 0x0")
	})
}
