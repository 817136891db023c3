package http

import (
	"html/template"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
)

const (
	DefaultMaxImageBytes = 5 << 20
	keepAliveInterval    = 15 * time.Second
)

// Options configure the handler. Zero values take the defaults.
type Options struct {
	MaxImageBytes    int64
	ProgressInterval time.Duration
}

// Handler serves both the HTML workspace and the JSON API.
type Handler struct {
	mgr       *workspace.Manager
	options   domain.FormOptions
	maxImage  int64
	pollEvery time.Duration
	pages     *template.Template
}

// New creates a new Handler
func New(mgr *workspace.Manager, opt Options) *Handler {
	if opt.MaxImageBytes <= 0 {
		opt.MaxImageBytes = DefaultMaxImageBytes
	}
	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = workspace.DefaultProgressInterval
	}
	// Poll at twice the rotation rate so no message is skipped.
	poll := opt.ProgressInterval / 2
	if poll < 50*time.Millisecond {
		poll = 50 * time.Millisecond
	}
	return &Handler{
		mgr:       mgr,
		options:   domain.DefaultFormOptions(),
		maxImage:  opt.MaxImageBytes,
		pollEvery: poll,
		pages:     parsePages(),
	}
}
