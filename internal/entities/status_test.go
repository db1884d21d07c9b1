package entities_test

import (
	"testing"

	"github.com/SergeyBogomolovv/order-pipeline/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    entities.Status
		wantErr error
	}{
		{name: "pending", input: "Pending", want: entities.StatusPending},
		{name: "processing", input: "Processing", want: entities.StatusProcessing},
		{name: "completed", input: "Completed", want: entities.StatusCompleted},
		{name: "empty", input: "", wantErr: entities.ErrInvalidStatus},
		{name: "wrong case", input: "completed", wantErr: entities.ErrInvalidStatus},
		{name: "unknown", input: "Cancelled", wantErr: entities.ErrInvalidStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entities.ParseStatus(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransition_Apply(t *testing.T) {
	testCases := []struct {
		name        string
		transition  entities.Transition
		current     entities.Status
		want        entities.Status
		wantChanged bool
		wantErr     error
	}{
		{
			name:        "start from pending",
			transition:  entities.StartProcessing,
			current:     entities.StatusPending,
			want:        entities.StatusProcessing,
			wantChanged: true,
		},
		{
			name:       "start when already processing is no-op",
			transition: entities.StartProcessing,
			current:    entities.StatusProcessing,
			want:       entities.StatusProcessing,
		},
		{
			name:       "start when completed does not regress",
			transition: entities.StartProcessing,
			current:    entities.StatusCompleted,
			want:       entities.StatusCompleted,
		},
		{
			name:        "complete from processing",
			transition:  entities.CompleteProcessing,
			current:     entities.StatusProcessing,
			want:        entities.StatusCompleted,
			wantChanged: true,
		},
		{
			name:       "complete when already completed is no-op",
			transition: entities.CompleteProcessing,
			current:    entities.StatusCompleted,
			want:       entities.StatusCompleted,
		},
		{
			name:       "complete from pending is not allowed",
			transition: entities.CompleteProcessing,
			current:    entities.StatusPending,
			want:       entities.StatusPending,
			wantErr:    entities.ErrTransitionNotAllowed,
		},
		{
			name:       "unknown current status",
			transition: entities.StartProcessing,
			current:    entities.Status("Lost"),
			want:       entities.Status("Lost"),
			wantErr:    entities.ErrInvalidStatus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed, err := tc.transition.Apply(tc.current)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantChanged, changed)
		})
	}
}

func TestTransition_ApplyTwice(t *testing.T) {
	status := entities.StatusProcessing

	first, changed, err := entities.CompleteProcessing.Apply(status)
	require.NoError(t, err)
	assert.True(t, changed)

	second, changed, err := entities.CompleteProcessing.Apply(first)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, entities.StatusCompleted, second)
}
