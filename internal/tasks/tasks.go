// package tasks implements bulk operations over the favorites API.
//
// The core abstraction is Engine, which sequences multi-request
// operations and emits progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/api"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// Phase identifies the stage of a bulk operation.
type Phase int

const (
	FetchFavorites Phase = iota
	DeleteFavorites
	Done
)

// ProgressUpdate is one progress event emitted during a bulk operation.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

// Engine orchestrates bulk favorites operations.
type Engine struct {
	client *api.Client
	logger *log.Logger
}

// NewEngine creates an Engine over the given API client.
func NewEngine(client *api.Client, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{client: client, logger: logger}
}

// emit sends a progress update when a channel is attached.
func emit(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog != nil {
		prog <- update
	}
}
