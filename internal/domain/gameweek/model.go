package gameweek

import (
	"errors"
	"time"
)

var (
	ErrAlreadyAdvanced = errors.New("gameweek already advanced")
	ErrDraftNotDone    = errors.New("draft must complete before gameweeks run")
	ErrNotActive       = errors.New("league is not in an active gameweek")
)

// Phase is the league lifecycle around the gameweek cursor.
type Phase string

const (
	PhaseSetup  Phase = "SETUP"
	PhaseDraft  Phase = "DRAFT"
	PhaseActive Phase = "ACTIVE"
)

// State is the league-wide cursor. Current is meaningful only in the Active
// phase and only ever moves forward.
type State struct {
	Phase   Phase
	Current int
}

// ManagerResult is one manager's settled line for a closed gameweek.
type ManagerResult struct {
	ManagerID       string
	GrossPoints     float64
	TransferPenalty int
	NetPoints       float64
	CaptainID       string
}

// Settlement freezes a gameweek: per-manager totals plus the per-player
// cumulative point baseline the next settlement differences against.
type Settlement struct {
	Gameweek        int
	Results         []ManagerResult
	PlayerBaselines map[string]float64
	SettledAt       time.Time
}
