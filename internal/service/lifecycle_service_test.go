package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionRejectsIllegalMoves(t *testing.T) {
	f := twoQuestionFixture(model.StatusInvited)
	ea := f.eas.get(eaID)

	err := f.lifecycle.Transition(context.Background(), &ea, model.StatusCompleted)
	var terr *util.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "INVITED", terr.From)
	assert.Equal(t, "COMPLETED", terr.To)
	assert.Equal(t, model.StatusInvited, f.eas.get(eaID).Status)

	require.NoError(t, f.lifecycle.Transition(context.Background(), &ea, model.StatusConfirmed))
	assert.Equal(t, model.StatusConfirmed, f.eas.get(eaID).Status)
}

func TestTransitionFailsWhenRowMovedUnderneath(t *testing.T) {
	f := twoQuestionFixture(model.StatusConfirmed)
	stale := f.eas.get(eaID)

	moved, err := f.eas.CompareAndSetStatus(context.Background(), eaID, model.StatusConfirmed, model.StatusInProgress)
	require.NoError(t, err)
	require.True(t, moved)

	err = f.lifecycle.Transition(context.Background(), &stale, model.StatusInProgress)
	assert.ErrorIs(t, err, util.ErrInvalidStatusTransition)
	assert.Equal(t, model.StatusInProgress, stale.Status)
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := twoQuestionFixture(model.StatusInProgress)
	ctx := context.Background()

	first := f.eas.get(eaID)
	stale := f.eas.get(eaID)

	won, err := f.lifecycle.Complete(ctx, &first)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = f.lifecycle.Complete(ctx, &stale)
	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, model.StatusCompleted, stale.Status)

	won, err = f.lifecycle.Complete(ctx, &first)
	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, 1, f.eas.scoreSaves)
}

func TestConcurrentCompletionHasOneWinner(t *testing.T) {
	f := twoQuestionFixture(model.StatusConfirmed)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ea := f.eas.get(eaID)
			won, err := f.lifecycle.Complete(ctx, &ea)
			assert.NoError(t, err)
			if won {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, f.eas.scoreSaves)
	assert.Equal(t, model.StatusCompleted, f.eas.get(eaID).Status)
}
