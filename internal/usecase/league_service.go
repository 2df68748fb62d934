package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/platform/id"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

type RegisterManagerInput struct {
	Name     string
	TeamName string
}

// StandingRow is one line of the season table: settled net points summed
// across every closed gameweek.
type StandingRow struct {
	Rank        int
	ManagerID   string
	Name        string
	TeamName    string
	TotalPoints float64
}

// LeagueService handles manager registration and the season table. The first
// registered manager becomes the league admin; there is exactly one.
type LeagueService struct {
	managerRepo  manager.Repository
	gameweekRepo gameweek.Repository
	idGen        id.Generator
	logger       *logging.Logger
}

func NewLeagueService(
	managerRepo manager.Repository,
	gameweekRepo gameweek.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}

	return &LeagueService{
		managerRepo:  managerRepo,
		gameweekRepo: gameweekRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// RegisterManager adds a participant while the league is still in setup.
func (s *LeagueService) RegisterManager(ctx context.Context, input RegisterManagerInput) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RegisterManager")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.Name == "" || input.TeamName == "" {
		return manager.Manager{}, fmt.Errorf("%w: name and team_name are required", ErrInvalidInput)
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("get league state before registration: %w", err)
	}
	if league.Phase != gameweek.PhaseSetup {
		return manager.Manager{}, fmt.Errorf("%w: registration closes when the draft starts, league phase is %s", ErrIllegalTransition, league.Phase)
	}

	existing, err := s.managerRepo.List(ctx)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("list managers before registration: %w", err)
	}
	for _, m := range existing {
		if strings.EqualFold(m.Name, input.Name) {
			return manager.Manager{}, fmt.Errorf("%w: manager name %q is taken", ErrInvalidInput, input.Name)
		}
	}

	managerID, err := s.idGen.NewID()
	if err != nil {
		return manager.Manager{}, fmt.Errorf("generate manager id: %w", err)
	}
	item := manager.Manager{
		ID:       managerID,
		Name:     input.Name,
		TeamName: input.TeamName,
		IsAdmin:  len(existing) == 0,
	}
	if err := item.Validate(); err != nil {
		return manager.Manager{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.managerRepo.Upsert(ctx, item); err != nil {
		return manager.Manager{}, fmt.Errorf("store manager %s: %w", item.ID, err)
	}

	s.logger.InfoContext(ctx, "manager registered", "manager_id", item.ID, "team_name", item.TeamName, "is_admin", item.IsAdmin)
	return item, nil
}

func (s *LeagueService) ListManagers(ctx context.Context) ([]manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListManagers")
	defer span.End()

	items, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// Standings ranks managers by total settled net points, highest first.
// Ties share the score ordering and break alphabetically on team name so
// the table is stable across calls.
func (s *LeagueService) Standings(ctx context.Context) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers for standings: %w", err)
	}
	settlements, err := s.gameweekRepo.ListSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settlements for standings: %w", err)
	}

	totals := make(map[string]float64, len(managers))
	for _, settlement := range settlements {
		for _, result := range settlement.Results {
			totals[result.ManagerID] += result.NetPoints
		}
	}

	rows := make([]StandingRow, 0, len(managers))
	for _, m := range managers {
		rows = append(rows, StandingRow{
			ManagerID:   m.ID,
			Name:        m.Name,
			TeamName:    m.TeamName,
			TotalPoints: totals[m.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].TeamName < rows[j].TeamName
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
