// Package simlog wires up structured logging the way moby/moby does:
// logrus as the concrete logger, exposed through containerd/log's
// context-carried logger so every package logs via log.G(ctx) without
// importing logrus directly. A separate zap logger is used only for
// benchmark timing output (spec §6: "verbose/benchmark flags emit timing
// statistics to standard output"), kept deliberately apart from the
// request-scoped structured logs.
package simlog

import (
	"context"
	"os"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Configure installs a logrus logger as containerd/log's backing
// implementation at the given level ("debug", "info", "warn", "error").
func Configure(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// WithFields returns a context carrying a logger annotated with fields,
// for use with log.G(ctx) at call sites (moby/moby's convention
// throughout daemon/ and container/).
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	return log.WithLogger(ctx, log.G(ctx).WithFields(fields))
}

// NewBenchmarkLogger builds a zap logger tuned for low-overhead timing
// emission: JSON lines to stdout, no caller/stacktrace annotation, so
// benchmark harnesses (spec §5's external wall-clock harnesses) can parse
// it without the structured-logging ceremony request logs carry.
func NewBenchmarkLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
