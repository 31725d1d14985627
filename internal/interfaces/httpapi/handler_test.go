package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguevault/sleeper-sync/internal/domain/valuation"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

type stubValuationRepo struct {
	getByOffset func(ctx context.Context, offset int) (valuation.Snapshot, bool, error)
}

func (s *stubValuationRepo) GetByOffset(ctx context.Context, offset int) (valuation.Snapshot, bool, error) {
	return s.getByOffset(ctx, offset)
}

func newValuationRouter(repo valuation.Repository) http.Handler {
	logger := logging.NewNop()
	service := usecase.NewValuationService(repo, logger)
	handler := NewHandler(service, nil, logger)

	return NewRouter(handler, logger, []string{"*"}, "")
}

func TestCurrentValuations(t *testing.T) {
	capturedAt := time.Date(2025, time.August, 31, 6, 0, 0, 0, time.UTC)
	repo := &stubValuationRepo{
		getByOffset: func(_ context.Context, offset int) (valuation.Snapshot, bool, error) {
			if offset != 2 {
				return valuation.Snapshot{}, false, nil
			}
			return valuation.Snapshot{
				CapturedAt: capturedAt,
				Values:     map[string]int{"4034": 9999, "6794": 9579},
			}, true, nil
		},
	}
	router := newValuationRouter(repo)

	t.Run("serves snapshot at offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/valuations/current?offset=2", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			APIVersion string                    `json:"apiVersion"`
			Data       usecase.ValuationSnapshot `json:"data"`
		}
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response body: %v", err)
		}
		if body.APIVersion != "2.0" {
			t.Fatalf("expected apiVersion=2.0, got %q", body.APIVersion)
		}
		if body.Data.Date != "2025-08-31" {
			t.Fatalf("expected date 2025-08-31, got %q", body.Data.Date)
		}
		if got := body.Data.Values["4034"]; got != 9999 {
			t.Fatalf("expected value 9999 for player 4034, got %d", got)
		}
	})

	t.Run("missing offset defaults to latest", func(t *testing.T) {
		var seenOffset int
		offsetRepo := &stubValuationRepo{
			getByOffset: func(_ context.Context, offset int) (valuation.Snapshot, bool, error) {
				seenOffset = offset
				return valuation.Snapshot{CapturedAt: capturedAt, Values: map[string]int{}}, true, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/valuations/current", nil)
		rec := httptest.NewRecorder()

		newValuationRouter(offsetRepo).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if seenOffset != 0 {
			t.Fatalf("expected offset 0, got %d", seenOffset)
		}
	})

	t.Run("non-integer offset rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/valuations/current?offset=yesterday", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/valuations/current?offset=-1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("absent snapshot is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/valuations/current?offset=30", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHealthz(t *testing.T) {
	repo := &stubValuationRepo{
		getByOffset: func(context.Context, int) (valuation.Snapshot, bool, error) {
			return valuation.Snapshot{}, false, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newValuationRouter(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
