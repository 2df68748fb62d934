package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/openfantasy/draft-league/internal/platform/logging"
	"github.com/openfantasy/draft-league/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	draftService     *usecase.DraftService
	lineupService    *usecase.LineupService
	transferService  *usecase.TransferService
	gameweekService  *usecase.GameweekService
	playerService    *usecase.PlayerService
	ingestionService *usecase.IngestionService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	draftService *usecase.DraftService,
	lineupService *usecase.LineupService,
	transferService *usecase.TransferService,
	gameweekService *usecase.GameweekService,
	playerService *usecase.PlayerService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		draftService:     draftService,
		lineupService:    lineupService,
		transferService:  transferService,
		gameweekService:  gameweekService,
		playerService:    playerService,
		ingestionService: ingestionService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requireManagerID(ctx context.Context) (string, error) {
	managerID, ok := managerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: missing manager identity", usecase.ErrUnauthorized)
	}
	return managerID, nil
}
