// Package warehouse persists export tables with full-replace semantics:
// every run overwrites each table's entire contents wholesale.
package warehouse

import (
	"context"

	"EmaAnalyzer/internal/exporter"
)

// Sink stores a run's complete table set, replacing prior contents.
type Sink interface {
	Replace(ctx context.Context, tables []exporter.Table) error
	Name() string
	Close() error
}

// NoopSink discards everything. Used when no storage is configured.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (n *NoopSink) Replace(_ context.Context, _ []exporter.Table) error { return nil }
func (n *NoopSink) Name() string                                        { return "noop" }
func (n *NoopSink) Close() error                                        { return nil }
