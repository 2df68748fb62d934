package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

type stubFeedProvider struct {
	doc ExternalStatsDocument
	err error
}

func (s *stubFeedProvider) FetchDocument(context.Context) (ExternalStatsDocument, error) {
	return s.doc, s.err
}

func feedRecord(id, position string, goals int) ExternalPlayerRecord {
	return ExternalPlayerRecord{
		ID:       id,
		Name:     "Player " + id,
		Club:     "Test FC",
		Position: position,
		Goals:    goals,
	}
}

func TestIngestionService_Refresh_ReplacesPoolAndSnapshot(t *testing.T) {
	provider := &stubFeedProvider{doc: ExternalStatsDocument{
		UpdatedAt: time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC),
		Season:    "2026/27",
		League:    "premier-league",
		Players: []ExternalPlayerRecord{
			feedRecord("fwd-91", "fwd", 3),
			feedRecord("mid-91", " mid ", 1),
		},
	}}
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	statsRepo := memory.NewStatsFeedRepository()
	svc := NewIngestionService(provider, playerRepo, statsRepo, 2, logging.NewNop())

	result, err := svc.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Players != 2 || result.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.UpdatedAt.Equal(provider.doc.UpdatedAt) {
		t.Fatalf("expected feed timestamp, got %v", result.UpdatedAt)
	}

	pool, err := playerRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list pool: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected pool replaced with 2 players, got %d", len(pool))
	}

	snapshot, exists, err := statsRepo.Get(t.Context())
	if err != nil || !exists {
		t.Fatalf("get snapshot: exists=%v err=%v", exists, err)
	}
	if snapshot.Season != "2026/27" || len(snapshot.Players) != 2 {
		t.Fatalf("unexpected snapshot: season=%q players=%d", snapshot.Season, len(snapshot.Players))
	}
}

func TestIngestionService_Refresh_SkipsMalformedRecords(t *testing.T) {
	provider := &stubFeedProvider{doc: ExternalStatsDocument{
		Players: []ExternalPlayerRecord{
			feedRecord("fwd-91", "fwd", 3),
			feedRecord("", "fwd", 1),
			feedRecord("xx-01", "sweeper", 0),
		},
	}}
	svc := NewIngestionService(provider, memory.NewPlayerRepository(nil), memory.NewStatsFeedRepository(), 4, logging.NewNop())

	result, err := svc.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Players != 1 || result.Skipped != 2 {
		t.Fatalf("expected 1 kept and 2 skipped, got %+v", result)
	}
}

func TestIngestionService_Refresh_EmptyDocumentKeepsPool(t *testing.T) {
	provider := &stubFeedProvider{doc: ExternalStatsDocument{
		Note: "feed offline for maintenance",
	}}
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	statsRepo := memory.NewStatsFeedRepository()
	svc := NewIngestionService(provider, playerRepo, statsRepo, 2, logging.NewNop())

	result, err := svc.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Players != 0 || result.Note != "feed offline for maintenance" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.UpdatedAt.IsZero() {
		t.Fatalf("expected a fallback timestamp on an undated document")
	}

	// An empty document must not wipe the draftable pool.
	pool, err := playerRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list pool: %v", err)
	}
	if len(pool) != len(memory.SeedPlayers()) {
		t.Fatalf("pool was wiped: %d players left", len(pool))
	}
	if _, exists, err := statsRepo.Get(t.Context()); err != nil || !exists {
		t.Fatalf("expected snapshot stored: exists=%v err=%v", exists, err)
	}
}

func TestIngestionService_Refresh_ProviderDown(t *testing.T) {
	provider := &stubFeedProvider{err: errors.New("connection refused")}
	svc := NewIngestionService(provider, memory.NewPlayerRepository(nil), memory.NewStatsFeedRepository(), 2, logging.NewNop())

	if _, err := svc.Refresh(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
