// Package publisher posts marked documents to external platforms.
package publisher

import (
	"context"

	"auto_content_publisher/document"
)

// Status is the outcome of one publish attempt.
type Status int

const (
	// StatusSkipped means the document had no publish marker; nothing was sent.
	StatusSkipped Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result carries the printable output of a successful post (article URL or
// raw API response) or the error of a failed one.
type Result struct {
	Status Status
	Output string
	Err    error
}

// Target is one platform that accepts a document.
type Target interface {
	Name() string
	Post(ctx context.Context, doc document.Document) (string, error)
}

// Gate publishes a document only when it carries document.Marker.
// The target is built lazily so credentials are only required past the gate.
type Gate struct {
	NewTarget func() (Target, error)
	// OnMarker, if set, runs once the marker is found and before NewTarget.
	OnMarker func(doc document.Document)
}

func (g Gate) Publish(ctx context.Context, doc document.Document) Result {
	if !doc.HasMarker() {
		return Result{Status: StatusSkipped}
	}
	if g.OnMarker != nil {
		g.OnMarker(doc)
	}
	target, err := g.NewTarget()
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	out, err := target.Post(ctx, doc)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	return Result{Status: StatusSucceeded, Output: out}
}
