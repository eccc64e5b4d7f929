package ui_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/ui"
	"medclaim/mocks"
)

func approvedResult() *domain.ProcessingResult {
	return &domain.ProcessingResult{
		Documents:     []domain.ExtractedData{{DocumentType: domain.DocumentTypeBill, ConfidenceScore: 0.9}},
		Validation:    domain.ValidationResult{MissingDocuments: []string{}, Discrepancies: []string{}},
		ClaimDecision: &domain.ClaimDecision{Status: domain.ClaimStatusApproved, Reason: "All documents consistent"},
	}
}

func selection(names ...string) []ui.SelectedFile {
	files := make([]ui.SelectedFile, len(names))
	for i, n := range names {
		files[i] = ui.SelectedFile{Name: n, ContentType: "application/pdf", Data: []byte("%PDF-" + n)}
	}
	return files
}

func TestWorkspace_SubmitWithoutFilesIsNoop(t *testing.T) {
	sub := new(mocks.MockClaimService)
	w := ui.NewWorkspace(sub)

	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, ui.State{}, w.State())
	sub.AssertNotCalled(t, "ProcessClaim", mock.Anything, mock.Anything)
}

func TestWorkspace_SubmitSendsSelection(t *testing.T) {
	sub := new(mocks.MockClaimService)
	files := selection("bill.pdf", "summary.pdf", "id.pdf")
	sub.On("ProcessClaim", mock.Anything, files).Return(approvedResult(), nil).Once()

	w := ui.NewWorkspace(sub)
	w.Select(files)
	require.NoError(t, w.Submit(context.Background()))

	st := w.State()
	assert.False(t, st.Busy)
	assert.Empty(t, st.Error)
	require.NotNil(t, st.Result)
	assert.Equal(t, domain.ClaimStatusApproved, st.Result.ClaimDecision.Status)
	assert.Equal(t, []string{"bill.pdf", "summary.pdf", "id.pdf"}, st.FileNames())
	sub.AssertExpectations(t)
}

func TestWorkspace_FailureReplacesResult(t *testing.T) {
	sub := new(mocks.MockClaimService)
	cause := errors.New("connection refused")
	sub.On("ProcessClaim", mock.Anything, mock.Anything).Return(approvedResult(), nil).Once()
	sub.On("ProcessClaim", mock.Anything, mock.Anything).Return(nil, cause).Once()

	w := ui.NewWorkspace(sub)
	w.Select(selection("bill.pdf"))
	require.NoError(t, w.Submit(context.Background()))
	require.NotNil(t, w.State().Result)

	err := w.Submit(context.Background())

	assert.ErrorIs(t, err, cause)
	st := w.State()
	assert.Nil(t, st.Result)
	assert.Equal(t, ui.GenericErrorMessage, st.Error)
}

func TestWorkspace_SuccessReplacesError(t *testing.T) {
	sub := new(mocks.MockClaimService)
	sub.On("ProcessClaim", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
	sub.On("ProcessClaim", mock.Anything, mock.Anything).Return(approvedResult(), nil).Once()

	w := ui.NewWorkspace(sub)
	w.Select(selection("bill.pdf"))
	require.Error(t, w.Submit(context.Background()))
	assert.Equal(t, ui.GenericErrorMessage, w.State().Error)

	require.NoError(t, w.Submit(context.Background()))

	st := w.State()
	assert.Empty(t, st.Error)
	assert.NotNil(t, st.Result)
}

func TestWorkspace_SelectClearsPreviousOutcome(t *testing.T) {
	sub := new(mocks.MockClaimService)
	sub.On("ProcessClaim", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	w := ui.NewWorkspace(sub)
	w.Select(selection("bill.pdf"))
	require.Error(t, w.Submit(context.Background()))

	w.Select(selection("other.pdf"))

	st := w.State()
	assert.Empty(t, st.Error)
	assert.Nil(t, st.Result)
	assert.Equal(t, []string{"other.pdf"}, st.FileNames())
}

func TestWorkspace_RejectsOverlappingSubmit(t *testing.T) {
	sub := new(mocks.MockClaimService)
	started := make(chan struct{})
	release := make(chan struct{})
	sub.On("ProcessClaim", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(approvedResult(), nil).Once()

	w := ui.NewWorkspace(sub)
	w.Select(selection("bill.pdf"))

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-started

	assert.True(t, w.State().Busy)
	assert.ErrorIs(t, w.Submit(context.Background()), ui.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, w.State().Busy)
	sub.AssertNumberOfCalls(t, "ProcessClaim", 1)
}
