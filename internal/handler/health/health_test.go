package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/spinwin/internal/handler/health"
)

func ok() health.Checker { return health.CheckerFunc(func(context.Context) error { return nil }) }

func failing(msg string) health.Checker {
	return health.CheckerFunc(func(context.Context) error { return errors.New(msg) })
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantTop    string
		wantChecks map[string]string
	}{
		{
			name:       "no dependencies",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantTop:    "ok",
			wantChecks: map[string]string{},
		},
		{
			name:       "sqlite healthy",
			checks:     map[string]health.Checker{"sqlite": ok()},
			wantStatus: http.StatusOK,
			wantTop:    "ok",
			wantChecks: map[string]string{"sqlite": "ok"},
		},
		{
			name:       "redis down",
			checks:     map[string]health.Checker{"sqlite": ok(), "redis": failing("refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantTop:    "degraded",
			wantChecks: map[string]string{"sqlite": "ok", "redis": "error"},
		},
		{
			name:       "both down",
			checks:     map[string]health.Checker{"sqlite": failing("locked"), "redis": failing("refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantTop:    "degraded",
			wantChecks: map[string]string{"sqlite": "error", "redis": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body health.Response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Status != tt.wantTop {
				t.Errorf("status field = %q, want %q", body.Status, tt.wantTop)
			}
			for name, want := range tt.wantChecks {
				if got := body.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}
