package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gliu20/collatz-encoder/trajectory"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	err := run(args, &out, &errOut)

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	input := []byte("the quick brown fox jumps over the lazy dog!")
	in := writeFile(t, dir, "input.txt", input)
	encoded := filepath.Join(dir, "input.collatz")
	decoded := filepath.Join(dir, "output.txt")

	_, logs, err := runCLI(t, "encode", "--verify", in, encoded)
	require.NoError(t, err)
	require.Contains(t, logs, "encoded")

	_, logs, err = runCLI(t, "decode", encoded, decoded)
	require.NoError(t, err)
	require.Contains(t, logs, "decoded")

	got, err := os.ReadFile(decoded)
	require.NoError(t, err)
	require.Equal(t, input, got)
}

func TestEncodeDecode_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "empty", nil)
	encoded := filepath.Join(dir, "empty.collatz")
	decoded := filepath.Join(dir, "empty.out")

	_, _, err := runCLI(t, "encode", in, encoded)
	require.NoError(t, err)
	_, _, err = runCLI(t, "decode", encoded, decoded)
	require.NoError(t, err)

	got, err := os.ReadFile(decoded)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "data.bin", []byte{0xde, 0xad, 0xbe, 0xef, 0x01})

	out, _, err := runCLI(t, "verify", in)
	require.NoError(t, err)
	require.Contains(t, out, "OK "+in)
	require.Contains(t, out, "odd_steps=")

	t.Run("trailing zeros are reported", func(t *testing.T) {
		padded := writeFile(t, dir, "padded.bin", []byte{0xde, 0xad, 0x00, 0x00})

		out, logs, err := runCLI(t, "verify", padded)
		require.NoError(t, err)
		require.Contains(t, out, "raw_digest=")
		require.Contains(t, logs, "trailing zero bytes will not survive decoding")
	})
}

func TestDecode_InvalidTrajectory(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "bad.collatz", []byte{0x07})
	out := filepath.Join(dir, "out")

	var err error
	require.NotPanics(t, func() {
		_, _, err = runCLI(t, "decode", in, out)
	})

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "decode", fileErr.Op)
	require.Equal(t, in, fileErr.Path)
	require.ErrorIs(t, err, trajectory.ErrInvalid)
}

func TestSelfTest(t *testing.T) {
	for _, mode := range []string{"0", "1", "2"} {
		t.Run(mode, func(t *testing.T) {
			out, _, err := runCLI(t, "selftest", "--limit", "64", mode)
			require.NoError(t, err)
			require.Contains(t, out, "64 round trips ok")
		})
	}
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "unknown subcommand", args: []string{"compress", "a", "b"}},
		{name: "missing output", args: []string{"encode", "only-input"}},
		{name: "too many arguments", args: []string{"decode", "a", "b", "c"}},
		{name: "bad selftest mode", args: []string{"selftest", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err, "usage errors exit 0")
			require.Contains(t, out, "Usage:")
		})
	}
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		missing := filepath.Join(dir, "absent")
		_, logs, err := runCLI(t, "encode", missing, filepath.Join(dir, "out"))

		var fileErr *FileError
		require.ErrorAs(t, err, &fileErr)
		require.Equal(t, "open", fileErr.Op)
		require.Equal(t, missing, fileErr.Path)
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Contains(t, logs, "collatz failed")
	})

	t.Run("unwritable output", func(t *testing.T) {
		in := writeFile(t, dir, "in", []byte{1})
		out := filepath.Join(dir, "no-such-dir", "out")
		_, _, err := runCLI(t, "decode", in, out)

		var fileErr *FileError
		require.ErrorAs(t, err, &fileErr)
		require.Equal(t, "create", fileErr.Op)
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "collatz.yaml", []byte("log:\n  level: debug\n  format: json\narena:\n  enabled: false\n"))
	in := writeFile(t, dir, "in", []byte{0x07})

	_, logs, err := runCLI(t, "--config", cfg, "encode", in, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Contains(t, logs, `"msg":"configuration loaded"`)
	require.Contains(t, logs, `"arena":false`)

	t.Run("flags override the file", func(t *testing.T) {
		_, logs, err := runCLI(t, "--config", cfg, "--log-level", "error", "encode", in, filepath.Join(dir, "out2"))
		require.NoError(t, err)
		require.Empty(t, logs)
	})

	t.Run("invalid config fails", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", []byte("log:\n  level: loud\n"))
		_, _, err := runCLI(t, "--config", bad, "verify", in)
		require.Error(t, err)
	})
}

func TestFileError(t *testing.T) {
	inner := errors.New("boom")
	err := &FileError{Op: "create", Path: "/tmp/x", Err: inner}

	require.Equal(t, "create /tmp/x: boom", err.Error())
	require.ErrorIs(t, err, inner)
}

func TestVerify_Compressibility(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "text", bytes.Repeat([]byte("abcabcabc "), 50))

	out, _, err := runCLI(t, "verify", "--compressibility", in)
	require.NoError(t, err)
	require.Contains(t, out, "input    none=500 zstd=")
	require.Contains(t, out, "encoded  none=")
	require.Contains(t, out, "lz4=")

	t.Run("selected algorithms", func(t *testing.T) {
		out, _, err := runCLI(t, "verify", "--compressibility", "--algorithms", "zstd,LZ4", in)
		require.NoError(t, err)
		require.Contains(t, out, "input    zstd=")
		require.Contains(t, out, "lz4=")
		require.NotContains(t, out, "none=")
		require.NotContains(t, out, "s2=")
	})

	t.Run("ratios are logged", func(t *testing.T) {
		_, logs, err := runCLI(t, "--log-level", "debug", "verify", "--compressibility", "--algorithms", "none", in)
		require.NoError(t, err)
		require.Contains(t, logs, "ratio=1")
	})

	t.Run("unknown algorithm fails", func(t *testing.T) {
		_, _, err := runCLI(t, "verify", "--compressibility", "--algorithms", "brotli", in)
		require.ErrorContains(t, err, `unknown algorithm "brotli"`)
	})
}

func TestConfigCommand(t *testing.T) {
	out, _, err := runCLI(t, "config")
	require.NoError(t, err)
	require.Contains(t, out, "byte_order: little")
	require.Contains(t, out, "enabled: true")

	out, _, err = runCLI(t, "--byte-order", "big", "--no-arena", "config")
	require.NoError(t, err)
	require.Contains(t, out, "byte_order: big")
	require.Contains(t, out, "enabled: false")
}
