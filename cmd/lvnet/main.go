// SPDX-License-Identifier: MIT

// Command lvnet solves a flow network described in YAML and prints the
// branch flows together with the node and loop checks.
//
//	lvnet -f network.yaml [-plot conv.png] [-v] [-metrics] [-tol 1e-10] [-max-iter 50]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/hashicorp/go-metrics"

	"github.com/katalvlaran/lvnet/netfile"
	"github.com/katalvlaran/lvnet/network"
	"github.com/katalvlaran/lvnet/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lvnet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file     = fs.String("f", "", "network description (YAML)")
		plotPath = fs.String("plot", "", "write a convergence chart to this file (.png, .svg, .pdf)")
		verbose  = fs.Bool("v", false, "log every Newton step")
		dump     = fs.Bool("metrics", false, "print solver metrics after the report")
		tol      = fs.Float64("tol", 0, "override the residual tolerance")
		maxIter  = fs.Int("max-iter", 0, "override the iteration cap")
		ref      = fs.String("ref", "", "override the reference junction")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(stderr, "lvnet: -f is required")
		fs.Usage()
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	doc, err := netfile.Load(*file)
	if err != nil {
		logger.Error("failed to load network", "error", err)
		return 1
	}
	if *tol > 0 {
		doc.Solver.Tolerance = *tol
	}
	if *maxIter > 0 {
		doc.Solver.MaxIterations = *maxIter
	}
	if *ref != "" {
		doc.Solver.Reference = *ref
	}

	net, err := doc.Build()
	if err != nil {
		logger.Error("failed to build network", "error", err)
		return 1
	}
	lay, err := net.Layout(doc.Solver.Reference)
	if err != nil {
		logger.Error("invalid equation layout", "error", err)
		return 1
	}

	sink := metrics.NewInmemSink(time.Minute, time.Minute)
	opts := append(doc.Options(),
		network.WithLogger(logger),
		network.WithMetrics(sink),
		network.WithContext(ctx))

	res, err := net.Solve(doc.Guess(len(lay.Unknowns)), opts...)
	if err != nil {
		logger.Error("solve failed", "error", err)
		if *dump {
			dumpMetrics(stdout, sink)
		}
		return 1
	}

	if err = report.Write(stdout, doc.Name, res); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}
	if *plotPath != "" {
		if err = report.SaveConvergence(*plotPath, doc.Name, res.History); err != nil {
			logger.Error("failed to save chart", "error", err)
			return 1
		}
		logger.Info("chart written", "path", *plotPath)
	}
	if *dump {
		dumpMetrics(stdout, sink)
	}

	return 0
}

// dumpMetrics prints the counters, gauges and samples held by sink.
func dumpMetrics(w io.Writer, sink *metrics.InmemSink) {
	fmt.Fprintln(w, "\nMETRICS")
	for _, iv := range sink.Data() {
		for _, k := range sortedKeys(iv.Counters) {
			fmt.Fprintf(w, "counter %s = %g\n", k, iv.Counters[k].Sum)
		}
		for _, k := range sortedKeys(iv.Gauges) {
			fmt.Fprintf(w, "gauge   %s = %g\n", k, iv.Gauges[k].Value)
		}
		for _, k := range sortedKeys(iv.Samples) {
			s := iv.Samples[k]
			fmt.Fprintf(w, "sample  %s count=%d mean=%g\n", k, s.Count, s.AggregateSample.Mean())
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
