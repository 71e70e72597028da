// Inspection tool for overlap layouts
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robert-malhotra/go-halo/halo"
	"github.com/robert-malhotra/go-halo/internal/config"
)

func main() {
	var (
		cfg        config.Config
		configFile string
		logLevel   string
		trim       bool
	)
	cfg.RegisterFlagsAndApplyDefaults("", flag.CommandLine)
	flag.StringVar(&configFile, "config.file", "", "YAML file read over the flag values")
	flag.StringVar(&logLevel, "log.level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&trim, "trim", false, "Trim the overlapped array again and check it against the input")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(logLevel, level.InfoValue())))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)

	if configFile != "" {
		if err := cfg.Load(configFile); err != nil {
			level.Error(logger).Log("msg", "failed to load config", "file", configFile, "err", err)
			os.Exit(1)
		}
	} else if err := cfg.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid flags", "err", err)
		flag.Usage()
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	metrics := halo.NewMetrics(reg)

	opts := withOptions(cfg.Options(), halo.WithLogger(logger), halo.WithMetrics(metrics))
	if err := run(context.Background(), &cfg, trim, logger, opts); err != nil {
		level.Error(logger).Log("msg", "overlap failed", "err", err)
		os.Exit(1)
	}

	if err := dumpMetrics(reg); err != nil {
		level.Error(logger).Log("msg", "failed to gather metrics", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, trim bool, logger log.Logger, opts []halo.Option) error {
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	x, err := halo.BlockFromFunc(layout.Shape(), func(i int) int { return i })
	if err != nil {
		return err
	}
	a, err := halo.FromLayout(x, layout, halo.WithName("input"))
	if err != nil {
		return err
	}
	boundary, err := cfg.BoundarySpec()
	if err != nil {
		return err
	}
	depth := cfg.DepthSpec()

	level.Info(logger).Log("msg", "overlapping", "shape", fmt.Sprint(a.Shape()), "layout", layout, "blocks", a.NumBlocks())
	g, err := halo.Overlap(ctx, a, depth, boundary, withOptions(opts, halo.WithName("overlap"))...)
	if err != nil {
		return err
	}

	fmt.Printf("=== Overlap of %v ===\n\n", a.Shape())
	for axis := 0; axis < a.Rank(); axis++ {
		d, b := depth.Axis(axis), boundary.Axis(axis)
		fmt.Printf("Axis %d: depth (%d, %d), boundary %s\n", axis, d.Before, d.After, b)
		fmt.Printf("  Input:  %v\n", a.Layout().Sizes(axis))
		fmt.Printf("  Output: %v\n", g.Layout().Sizes(axis))
	}
	fmt.Println()

	if cfg.PrintArray {
		d, err := g.Dense()
		if err != nil {
			return err
		}
		printArray(d)
		fmt.Println()
	}

	if trim {
		tr, err := halo.TrimInternal(ctx, g, depth, withOptions(opts, halo.WithOuterEdges(), halo.WithBoundary(boundary))...)
		if err != nil {
			return err
		}
		got, err := tr.Dense()
		if err != nil {
			return err
		}
		if !slices.Equal(got.Values(), x.Values()) {
			return errors.New("trimmed array differs from input")
		}
		fmt.Printf("Trim: restored %v in %d blocks\n\n", tr.Shape(), tr.NumBlocks())
	}
	return nil
}

// withOptions returns base followed by extra in a freshly allocated slice.
func withOptions(base []halo.Option, extra ...halo.Option) []halo.Option {
	return slices.Concat(base, extra)
}

// printArray prints a rank-1 or rank-2 array as rows; higher ranks print
// as one flat row.
func printArray(d halo.Block[int]) {
	v := d.Values()
	width := len(fmt.Sprint(len(v)))
	row := d.Dim(d.Rank() - 1)
	if d.Rank() > 2 {
		row = len(v)
	}
	for i := 0; i < len(v); i += row {
		cells := make([]string, 0, row)
		for _, x := range v[i : i+row] {
			cells = append(cells, fmt.Sprintf("%*d", width, x))
		}
		fmt.Println(strings.Join(cells, " "))
	}
}

func dumpMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Println("Metrics:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Printf("  %s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
