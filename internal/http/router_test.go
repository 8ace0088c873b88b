package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"golang.org/x/sync/errgroup"
)

func TestRouter_CORS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCompleter := NewMockCompleter(ctrl)
	mockCompleter.EXPECT().Complete(gomock.Any(), "hi").Return("hello", nil)

	router := NewRouter(NewHandlers(mockCompleter, false))

	t.Run("preflight from any origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/query", nil)
		req.Header.Set("Origin", "https://travel-assistant.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom-Header")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code >= 300 {
			t.Errorf("preflight status = %d, want 2xx", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
			t.Errorf("Access-Control-Allow-Methods = %q, want containing %q", got, http.MethodPost)
		}
	})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodConnect, http.MethodTrace} {
		t.Run("preflight for "+method, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/query", nil)
			req.Header.Set("Origin", "https://travel-assistant.example")
			req.Header.Set("Access-Control-Request-Method", method)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
			}
		})
	}

	t.Run("simple request from any origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"question": "hi"}`))
		req.Header.Set("Origin", "http://127.0.0.1:3000")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
		}
	})
}

func TestRouter_RequestID(t *testing.T) {
	router := NewRouter(NewHandlers(nil, false))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if got := w.Header().Get(RequestIDHeader); len(got) != 36 {
			t.Errorf("%s = %q, want a UUID", RequestIDHeader, got)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("%s = %q, want %q", RequestIDHeader, got, "abc-123")
		}
	})
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(NewHandlers(nil, false))

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/query", http.StatusMethodNotAllowed},
		{http.MethodPost, "/ask", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_ConcurrentQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// both calls must be in flight before either answers
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})

	mockCompleter := NewMockCompleter(ctrl)
	mockCompleter.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, question string) (string, error) {
			arrived <- struct{}{}
			select {
			case <-release:
			case <-time.After(5 * time.Second):
				return "", errors.New("timed out waiting for the other request")
			}
			return "answer to " + question, nil
		}).
		Times(2)

	srv := httptest.NewServer(NewRouter(NewHandlers(mockCompleter, false)))
	defer srv.Close()

	go func() {
		<-arrived
		<-arrived
		close(release)
	}()

	questions := []string{"Where is Lisbon?", "Where is Porto?"}
	answers := make([]string, len(questions))

	var g errgroup.Group
	for i, q := range questions {
		g.Go(func() error {
			body := fmt.Sprintf(`{"question": %q}`, q)
			resp, err := http.Post(srv.URL+"/query", "application/json", strings.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var out map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if out["error"] != "" {
				return errors.New(out["error"])
			}
			answers[i] = out["response"]
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent queries failed: %v", err)
	}

	for i, q := range questions {
		if want := "answer to " + q; answers[i] != want {
			t.Errorf("answer[%d] = %q, want %q", i, answers[i], want)
		}
	}
}
