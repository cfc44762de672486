// Package editor implements the per-section editing state machine. Each
// editor moves between Viewing and Editing; a submission validates locally
// before it touches the network and the editor returns to Viewing only once
// the server confirms the write.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/ekarpova/resumecraft/internal/resume"
)

type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
)

var (
	// ErrBusy is returned while a submission is in flight. Neither a second
	// submit nor a cancel may interleave with it.
	ErrBusy = errors.New("submission in flight")

	// ErrNotEditing is returned when Submit or Cancel is called in Viewing.
	ErrNotEditing = errors.New("editor is not in editing state")
)

// SubmitFunc performs the network write for a normalized, validated
// payload.
type SubmitFunc func(ctx context.Context, payload resume.SectionPayload) error

// Editor is the state machine for one section of one resume.
type Editor struct {
	mu       sync.Mutex
	kind     resume.SectionKind
	state    State
	inFlight bool
	submit   SubmitFunc
}

// New creates an editor for the given section. A section that has no data
// yet opens directly in Editing; one with existing data opens in Viewing.
func New(kind resume.SectionKind, hasData bool, submit SubmitFunc) *Editor {
	state := StateEditing
	if hasData {
		state = StateViewing
	}
	return &Editor{kind: kind, state: state, submit: submit}
}

func (e *Editor) Kind() resume.SectionKind { return e.kind }

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Edit moves the editor into Editing. Editing again is a no-op.
func (e *Editor) Edit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateEditing
}

// Cancel discards the in-progress edit and returns to Viewing. The form
// values are owned by the caller; the editor only tracks state.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return ErrBusy
	}
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.state = StateViewing
	return nil
}

// Submit validates the payload and, only if it passes, performs the network
// write. On success the editor transitions to Viewing. On any failure it
// stays in Editing so the caller can correct and resubmit the same values.
// A submit while another is in flight is refused outright.
func (e *Editor) Submit(ctx context.Context, payload resume.SectionPayload) error {
	e.mu.Lock()
	if e.state != StateEditing {
		e.mu.Unlock()
		return ErrNotEditing
	}
	if e.inFlight {
		e.mu.Unlock()
		return ErrBusy
	}

	payload.Normalize()
	if err := resume.Validate(payload); err != nil {
		// Local rejection, the backend is never contacted.
		e.mu.Unlock()
		return err
	}

	e.inFlight = true
	e.mu.Unlock()

	err := e.submit(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	if err != nil {
		return err
	}
	e.state = StateViewing
	return nil
}
