package notification

import (
	"context"
	"time"
)

type Sender interface {
	CanSend() bool
	Send(ctx context.Context, report Report) error
	Name() string
}

// Report summarises a check run.
type Report struct {
	Rule       string
	Pattern    string
	Checked    int
	Violations []Field
	RunTime    time.Duration
}

type Field struct {
	Name  string
	Value string
}
