package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

type Handler struct {
	valuationService *usecase.ValuationService
	coordinator      *usecase.CoordinatorService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	valuationService *usecase.ValuationService,
	coordinator *usecase.CoordinatorService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		valuationService: valuationService,
		coordinator:      coordinator,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type currentValuationQuery struct {
	Offset int `validate:"gte=0"`
}

// CurrentValuations serves the most recent valuation snapshot, or an older
// one via the offset query parameter.
func (h *Handler) CurrentValuations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentValuations")
	defer span.End()

	query := currentValuationQuery{}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: offset must be an integer", usecase.ErrInvalidInput))
			return
		}
		query.Offset = offset
	}
	if err := h.validator.StructCtx(ctx, query); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: offset must be >= 0", usecase.ErrInvalidInput))
		return
	}

	snapshot, err := h.valuationService.Current(ctx, query.Offset)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}

// RunSyncPass triggers one sync pass outside the schedule. A pass already
// running is reported as a conflict, mirroring the coordinator's skip.
func (h *Handler) RunSyncPass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncPass")
	defer span.End()

	result, err := h.coordinator.RunOnce(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
