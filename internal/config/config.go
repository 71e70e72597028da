// Package config holds the YAML and flag configuration of an overlap run.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-halo/halo"
)

const (
	DefaultShape    = "8,8"
	DefaultChunks   = "4,4"
	DefaultDepth    = "1"
	DefaultBoundary = "none"
)

// ErrConfig is returned for configuration that cannot describe a run.
var ErrConfig = errors.New("invalid config")

// Config describes the array to build and the overlap to apply to it.
type Config struct {
	// Shape is the extent of the array along each axis.
	Shape IntList `yaml:"shape"`
	// Chunks is the regular block shape.
	Chunks IntList `yaml:"chunks"`
	// Depth is one entry per axis. A single entry applies to every axis.
	Depth DepthList `yaml:"depth"`
	// Boundary is one policy per axis, in ParseBoundary syntax. A single
	// entry applies to every axis.
	Boundary []string `yaml:"boundary"`

	Concurrency int  `yaml:"concurrency"`
	PrintArray  bool `yaml:"print_array"`
}

// RegisterFlagsAndApplyDefaults registers the config flags on f under prefix
// and sets their defaults on cfg.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	_ = cfg.Shape.Set(DefaultShape)
	_ = cfg.Chunks.Set(DefaultChunks)
	_ = cfg.Depth.Set(DefaultDepth)
	cfg.Boundary = []string{DefaultBoundary}

	f.Var(&cfg.Shape, prefixConfig(prefix, "shape"), "Comma-separated array extent per axis.")
	f.Var(&cfg.Chunks, prefixConfig(prefix, "chunks"), "Comma-separated block shape.")
	f.Var(&cfg.Depth, prefixConfig(prefix, "depth"), "Comma-separated depth per axis; use before:after for asymmetric depth.")
	f.Var((*boundaryFlag)(&cfg.Boundary), prefixConfig(prefix, "boundary"), "Comma-separated boundary per axis: none, periodic, reflect, nearest or constant:<n>.")
	f.IntVar(&cfg.Concurrency, prefixConfig(prefix, "concurrency"), 0, "Blocks computed at once. 0 uses GOMAXPROCS.")
	f.BoolVar(&cfg.PrintArray, prefixConfig(prefix, "print-array"), false, "Print the assembled overlapped array.")
}

// Load reads the YAML file at path over cfg. Fields absent from the file
// keep their current values.
func (cfg *Config) Load(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg.Validate()
}

// Validate checks that the config describes a usable array and overlap.
func (cfg *Config) Validate() error {
	rank := len(cfg.Shape)
	if rank == 0 {
		return fmt.Errorf("%w: empty shape", ErrConfig)
	}
	if len(cfg.Chunks) != rank {
		return fmt.Errorf("%w: chunks %v do not match shape %v", ErrConfig, cfg.Chunks, cfg.Shape)
	}
	if n := len(cfg.Depth); n != 1 && n != rank {
		return fmt.Errorf("%w: %d depths for rank %d", ErrConfig, n, rank)
	}
	if n := len(cfg.Boundary); n > 1 && n != rank {
		return fmt.Errorf("%w: %d boundaries for rank %d", ErrConfig, n, rank)
	}
	_, err := cfg.BoundarySpec()
	return err
}

// Layout returns the regular layout of the configured array.
func (cfg *Config) Layout() (halo.Layout, error) {
	return halo.RegularLayout(cfg.Shape, cfg.Chunks)
}

// DepthSpec expands the configured depths to every axis.
func (cfg *Config) DepthSpec() halo.DepthSpec {
	s := make(halo.DepthSpec, len(cfg.Shape))
	for axis := range cfg.Shape {
		switch {
		case len(cfg.Depth) == 1:
			s[axis] = cfg.Depth[0].Depth
		case axis < len(cfg.Depth):
			s[axis] = cfg.Depth[axis].Depth
		}
	}
	return s
}

// BoundarySpec parses the configured boundaries for every axis.
func (cfg *Config) BoundarySpec() (halo.BoundarySpec, error) {
	s := make(halo.BoundarySpec, len(cfg.Shape))
	for axis := range cfg.Shape {
		var raw string
		switch {
		case len(cfg.Boundary) == 1:
			raw = cfg.Boundary[0]
		case axis < len(cfg.Boundary):
			raw = cfg.Boundary[axis]
		}
		b, err := halo.ParseBoundary(raw)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		s[axis] = b
	}
	return s, nil
}

// Options returns the engine options implied by the config.
func (cfg *Config) Options() []halo.Option {
	var opts []halo.Option
	if cfg.Concurrency > 0 {
		opts = append(opts, halo.WithConcurrency(cfg.Concurrency))
	}
	return opts
}

func prefixConfig(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// IntList is a comma-separated list of positive integers on the command line.
type IntList []int

func (l *IntList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *IntList) Set(s string) error {
	var out IntList
	for _, p := range splitList(s) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrConfig, p)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// AxisDepth is the depth of one axis. In YAML it is either a single
// integer or a [before, after] pair.
type AxisDepth struct {
	halo.Depth
}

func (d *AxisDepth) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		d.Depth = halo.Symmetric(n)
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("%w: line %d: depth pair needs 2 values, got %d", ErrConfig, node.Line, len(pair))
		}
		d.Depth = halo.Asymmetric(pair[0], pair[1])
		return nil
	default:
		return fmt.Errorf("%w: line %d: depth must be an integer or a pair", ErrConfig, node.Line)
	}
}

func (d AxisDepth) MarshalYAML() (any, error) {
	if d.Before == d.After {
		return d.Before, nil
	}
	return []int{d.Before, d.After}, nil
}

func (d AxisDepth) String() string {
	if d.Before == d.After {
		return strconv.Itoa(d.Before)
	}
	return fmt.Sprintf("%d:%d", d.Before, d.After)
}

func parseAxisDepth(s string) (AxisDepth, error) {
	before, after, pair := strings.Cut(s, ":")
	b, err := strconv.Atoi(before)
	if err != nil {
		return AxisDepth{}, fmt.Errorf("%w: bad depth %q", ErrConfig, s)
	}
	if !pair {
		return AxisDepth{halo.Symmetric(b)}, nil
	}
	a, err := strconv.Atoi(after)
	if err != nil {
		return AxisDepth{}, fmt.Errorf("%w: bad depth %q", ErrConfig, s)
	}
	return AxisDepth{halo.Asymmetric(b, a)}, nil
}

// DepthList is the per-axis depth list. A bare YAML integer is a list of one.
type DepthList []AxisDepth

func (l *DepthList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var d AxisDepth
		if err := d.UnmarshalYAML(node); err != nil {
			return err
		}
		*l = DepthList{d}
		return nil
	}
	var out []AxisDepth
	if err := node.Decode(&out); err != nil {
		return err
	}
	*l = out
	return nil
}

func (l *DepthList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, d := range *l {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

func (l *DepthList) Set(s string) error {
	var out DepthList
	for _, p := range splitList(s) {
		d, err := parseAxisDepth(p)
		if err != nil {
			return err
		}
		out = append(out, d)
	}
	*l = out
	return nil
}

type boundaryFlag []string

func (b *boundaryFlag) String() string {
	if b == nil {
		return ""
	}
	return strings.Join(*b, ",")
}

func (b *boundaryFlag) Set(s string) error {
	*b = splitList(s)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
