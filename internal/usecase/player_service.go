package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/scoring"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
)

// PlayerView is a pool entry with its season-cumulative fantasy points
// precomputed from the same formula settlement uses.
type PlayerView struct {
	player.Player
	SeasonPoints float64
}

// PlayerService exposes read access to the draftable pool.
type PlayerService struct {
	playerRepo player.Repository
	statsRepo  statsfeed.Repository
}

func NewPlayerService(playerRepo player.Repository, statsRepo statsfeed.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo, statsRepo: statsRepo}
}

func (s *PlayerService) List(ctx context.Context, position string) ([]PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter := player.Position(strings.ToUpper(strings.TrimSpace(position)))
	if filter != "" {
		if _, ok := player.AllPositions[filter]; !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
		}
	}

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	views := make([]PlayerView, 0, len(items))
	for _, item := range items {
		if filter != "" && item.Position != filter {
			continue
		}
		views = append(views, PlayerView{
			Player:       item,
			SeasonPoints: scoring.Points(item.Stats, item.Position),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].SeasonPoints != views[j].SeasonPoints {
			return views[i].SeasonPoints > views[j].SeasonPoints
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

func (s *PlayerService) GetByID(ctx context.Context, playerID string) (PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByID")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerView{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerView{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !exists {
		return PlayerView{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return PlayerView{Player: item, SeasonPoints: scoring.Points(item.Stats, item.Position)}, nil
}
