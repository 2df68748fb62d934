package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/draft"
)

type DraftRepository struct {
	mu     sync.RWMutex
	state  draft.State
	exists bool
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{}
}

func (r *DraftRepository) Get(_ context.Context) (draft.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return draft.State{}, false, nil
	}
	return cloneDraftState(r.state), true, nil
}

func (r *DraftRepository) Put(_ context.Context, state draft.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exists && r.state.Phase != draft.PhaseNotStarted {
		return fmt.Errorf("%w", draft.ErrAlreadyStarted)
	}

	r.state = cloneDraftState(state)
	r.exists = true
	return nil
}

func (r *DraftRepository) RecordPick(_ context.Context, pick draft.Pick, nextPhase draft.Phase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		return fmt.Errorf("%w", draft.ErrNotStarted)
	}
	if pick.Index != r.state.PickIndex {
		return fmt.Errorf("pick index %d does not match draft position %d", pick.Index, r.state.PickIndex)
	}

	r.state.Picks = append(r.state.Picks, pick)
	r.state.PickIndex++
	r.state.Phase = nextPhase
	return nil
}

func cloneDraftState(state draft.State) draft.State {
	state.ManagerOrder = append([]string(nil), state.ManagerOrder...)
	state.Picks = append([]draft.Pick(nil), state.Picks...)
	return state
}
