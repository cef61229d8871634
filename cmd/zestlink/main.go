// cmd/zestlink/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/tamzrod/zestlink/internal/config"
	"github.com/tamzrod/zestlink/internal/report"
	"github.com/tamzrod/zestlink/internal/transfer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: zestlink [flags] <config.yaml>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		glog.Exitf("zestlink: %v", err)
	}
}

func run(cfgPath string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Build link + report sink
	// --------------------

	runner, closeLink, err := transfer.Build(cfg)
	if err != nil {
		return fmt.Errorf("link build failed (transport=%s): %w", cfg.Link.Transport, err)
	}
	defer func() {
		if err := closeLink(); err != nil {
			glog.Warningf("link close failed: %v", err)
		}
	}()

	runID := report.NewRunID()

	rep, err := report.Build(cfg.Run.Report, runID)
	if err != nil {
		return fmt.Errorf("report build failed: %w", err)
	}
	defer func() {
		if err := rep.Close(); err != nil {
			glog.Warningf("report close failed: %v", err)
		}
	}()

	glog.Infof("run %s: transport=%s cycles=%d settle=%dms overflow=%s on_error=%s",
		runID, cfg.Link.Transport, cfg.Run.Cycles, *cfg.Link.SettleMs, cfg.Link.Overflow, cfg.Run.OnError)

	// Stop between cycles on SIGINT/SIGTERM; a cycle in flight always completes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- channel between runner and reporter ----
	out := make(chan transfer.CycleResult)
	errc := make(chan error, 1)

	go func() { errc <- runner.Run(ctx, out) }()

	for res := range out {
		if res.Err != nil {
			glog.Warningf("cycle %d failed: %v", res.Index, res.Err)
		}
		if err := rep.Report(res); err != nil {
			glog.Errorf("report write failed (cycle=%d): %v", res.Index, err)
		}
	}
	runErr := <-errc

	snap := runner.Status()
	if err := rep.Summary(snap); err != nil {
		glog.Errorf("report summary failed: %v", err)
	}
	glog.Infof("run %s done: cycles=%d failures=%d", runID, snap.Cycles, snap.Failures)

	return runErr
}
