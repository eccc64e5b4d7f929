// Package ui holds the claim upload workflow and the presentation of its result.
package ui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"medclaim/internal/domain"
)

// GenericErrorMessage is the only failure text shown to users.
const GenericErrorMessage = "Failed to process claim. Please try again."

// ErrBusy is returned by Submit while a previous submission is still in flight.
var ErrBusy = errors.New("a submission is already in progress")

// SelectedFile is one file picked for upload.
type SelectedFile = domain.ClaimDocument

// Submitter sends the selected files to the claim processing endpoint.
type Submitter interface {
	ProcessClaim(ctx context.Context, files []domain.ClaimDocument) (*domain.ProcessingResult, error)
}

// State is a snapshot of the workspace. At most one of Result and Error is set.
type State struct {
	Files  []SelectedFile
	Busy   bool
	Result *domain.ProcessingResult
	Error  string
}

// Workspace tracks the file selection and the outcome of the last submission.
type Workspace struct {
	submitter Submitter
	busy      atomic.Bool

	mu     sync.Mutex
	files  []SelectedFile
	result *domain.ProcessingResult
	errMsg string
}

// NewWorkspace creates an empty Workspace submitting through s.
func NewWorkspace(s Submitter) *Workspace {
	return &Workspace{submitter: s}
}

// Select replaces the selection and clears any previous result or error.
func (w *Workspace) Select(files []SelectedFile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = append([]SelectedFile(nil), files...)
	w.result = nil
	w.errMsg = ""
}

// Submit sends the current selection. With nothing selected it does nothing. A failure is
// recorded as GenericErrorMessage and its cause returned for logging.
func (w *Workspace) Submit(ctx context.Context) error {
	w.mu.Lock()
	if len(w.files) == 0 {
		w.mu.Unlock()
		return nil
	}
	if !w.busy.CompareAndSwap(false, true) {
		w.mu.Unlock()
		return ErrBusy
	}
	files := append([]SelectedFile(nil), w.files...)
	w.result = nil
	w.errMsg = ""
	w.mu.Unlock()

	defer w.busy.Store(false)

	result, err := w.submitter.ProcessClaim(ctx, files)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.result = nil
		w.errMsg = GenericErrorMessage
		return err
	}
	w.result = result
	w.errMsg = ""
	return nil
}

// State returns a snapshot of the workspace.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Files:  append([]SelectedFile(nil), w.files...),
		Busy:   w.busy.Load(),
		Result: w.result,
		Error:  w.errMsg,
	}
}

// FileNames returns the names of the selected files in selection order.
func (s State) FileNames() []string {
	names := make([]string, len(s.Files))
	for i, f := range s.Files {
		names[i] = f.Name
	}
	return names
}
