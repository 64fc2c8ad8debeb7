package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text in dev, JSON in stage/prod
	BackendZap Backend = "zap" // slog-zap
)

type Config struct {
	// Logger metadata, attached to every record.
	Service    string
	Version    string
	InstanceID string

	// Output control.
	Level   slog.Level
	Env     Env
	Backend Backend
	Debug   bool

	// Zap sampling.
	SampleInitial    int
	SampleThereafter int
	SampleTick       int

	AddSource bool
}
