package actor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/config"
	"github.com/ghuser/beantrail/pkg/logger"
)

func TestFromCtx(t *testing.T) {
	id := uuid.New()
	ctx := WithActorID(context.Background(), id)

	got, err := FromCtx(ctx)
	if err != nil {
		t.Fatalf("FromCtx: %v", err)
	}
	if got != id {
		t.Errorf("got %s, want %s", got, id)
	}
}

func TestFromCtx_Missing(t *testing.T) {
	if _, err := FromCtx(context.Background()); !errors.Is(err, ErrActorNotFound) {
		t.Fatalf("err = %v, want ErrActorNotFound", err)
	}
}

func TestRequire(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	id := uuid.New()

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		seen, err = FromCtx(r.Context())
		if err != nil {
			t.Errorf("FromCtx in handler: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Require(log)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid identity", id.String(), http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed uuid", "not-a-uuid", http.StatusUnauthorized},
		{"nil uuid", uuid.Nil.String(), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items/1/process", nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	if seen != id {
		t.Errorf("handler saw %s, want %s", seen, id)
	}
}
