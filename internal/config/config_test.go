package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-halo/halo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "halo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("test", flag.ContinueOnError))

	require.Equal(t, IntList{8, 8}, cfg.Shape)
	require.Equal(t, IntList{4, 4}, cfg.Chunks)
	require.NoError(t, cfg.Validate())
	require.Equal(t, halo.UniformDepth(2, 1), cfg.DepthSpec())

	bs, err := cfg.BoundarySpec()
	require.NoError(t, err)
	require.Equal(t, halo.UniformBoundary(2, halo.None), bs)
}

func TestFlags(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlagsAndApplyDefaults("overlap", fs)

	err := fs.Parse([]string{
		"-overlap.shape=6,9,3",
		"-overlap.chunks=3,4,3",
		"-overlap.depth=1,2:0,0",
		"-overlap.boundary=periodic, constant:-1,nearest",
		"-overlap.concurrency=2",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, halo.DepthSpec{
		0: halo.Symmetric(1),
		1: halo.Asymmetric(2, 0),
		2: halo.Symmetric(0),
	}, cfg.DepthSpec())

	bs, err := cfg.BoundarySpec()
	require.NoError(t, err)
	require.Equal(t, halo.BoundarySpec{
		0: halo.Periodic,
		1: halo.Constant(int64(-1)),
		2: halo.Nearest,
	}, bs)
	require.Len(t, cfg.Options(), 1)

	l, err := cfg.Layout()
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, l.Sizes(0))
	require.Equal(t, []int{4, 4, 1}, l.Sizes(1))

	require.Error(t, fs.Parse([]string{"-overlap.shape=6,x"}))
	require.Error(t, fs.Parse([]string{"-overlap.depth=1:y"}))
}

func TestLoad(t *testing.T) {
	var cfg Config
	cfg.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("test", flag.ContinueOnError))

	path := writeConfig(t, `
shape: [8, 8]
chunks: [4, 4]
depth: [2, [1, 0]]
boundary: ["constant:100", reflect]
print_array: true
`)
	require.NoError(t, cfg.Load(path))
	require.True(t, cfg.PrintArray)
	require.Equal(t, halo.DepthSpec{0: halo.Symmetric(2), 1: halo.Asymmetric(1, 0)}, cfg.DepthSpec())

	bs, err := cfg.BoundarySpec()
	require.NoError(t, err)
	require.Equal(t, halo.Constant(int64(100)), bs[0])
	require.Equal(t, halo.Reflect, bs[1])
}

func TestLoadKeepsUnsetFields(t *testing.T) {
	var cfg Config
	cfg.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("test", flag.ContinueOnError))

	require.NoError(t, cfg.Load(writeConfig(t, "depth: 3\n")))
	require.Equal(t, IntList{8, 8}, cfg.Shape)
	require.Equal(t, halo.UniformDepth(2, 3), cfg.DepthSpec())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad depth pair", "depth: [[1, 2, 3]]\n"},
		{"depth mapping", "depth: {a: 1}\n"},
		{"chunks rank", "chunks: [4]\n"},
		{"depth count", "shape: [4, 4, 4]\nchunks: [2, 2, 2]\ndepth: [1, 1]\n"},
		{"boundary count", "boundary: [none, none, none]\n"},
		{"unknown boundary", "boundary: [wrap]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("test", flag.ContinueOnError))
			require.Error(t, cfg.Load(writeConfig(t, tt.body)))
		})
	}

	var cfg Config
	require.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}
