// Package main implements the fluxkit demo entry point. It assembles a
// stream pipeline from YAML configuration (or a built-in default), runs it
// once, and prints the delivered values.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360/fluxkit/metric"
	"github.com/c360/fluxkit/pipeline"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "fluxkit"
)

// defaultConfig is the canonical demo chain: uppercase, drop "B", annotate
// the ambient context with a trace and a user id.
const defaultConfig = `
name: demo
source:
  items: [a, b, c]
stages:
  - kind: map
    op: uppercase
  - kind: filter
    op: not_equals
    arg: B
  - kind: context_write
    key: traceId
    value: abc-123
  - kind: context_write
    key: userId
    value: user-42
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a pipeline YAML file (built-in demo when empty)")
	debug := flag.Bool("debug", false, "enable debug logging of the data path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	p, err := pipeline.Build(cfg, pipeline.DefaultRegistry(), pipeline.Dependencies{
		Logger:  logger,
		Metrics: metric.NewRegistry(),
	})
	if err != nil {
		return err
	}

	result := p.Run()
	if result.Err != nil {
		return result.Err
	}

	for _, v := range result.Values {
		fmt.Printf("[RESULT] received: %v\n", v)
	}
	if result.Completed {
		fmt.Println("[RESULT] completed")
	}

	return nil
}

func loadConfig(path string) (pipeline.Config, error) {
	if path == "" {
		return pipeline.ParseConfig([]byte(defaultConfig))
	}
	return pipeline.LoadConfig(path)
}
