package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
)

func newTestClient(handler http.HandlerFunc) (repositories.UpstreamRepository, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	return client, server
}

func TestClient_SearchByNationalID(t *testing.T) {
	t.Run("404 is structured not found", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		apps, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if err != nil {
			t.Fatalf("404 must not be an error, got %v", err)
		}
		if apps != nil {
			t.Errorf("expected nil results, got %v", apps)
		}
	})

	t.Run("auth failures map to sentinel", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			_, err := client.SearchByNationalID(context.Background(), "30303030303030")
			server.Close()
			if !errors.Is(err, repositories.ErrUpstreamUnauthorized) {
				t.Errorf("status %d: expected ErrUpstreamUnauthorized, got %v", status, err)
			}
		}
	})

	t.Run("server errors map to sentinel", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if !errors.Is(err, repositories.ErrUpstreamServer) {
			t.Errorf("expected ErrUpstreamServer, got %v", err)
		}
	})

	t.Run("unreachable maps to sentinel", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})

		_, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if !errors.Is(err, repositories.ErrUpstreamUnreachable) {
			t.Errorf("expected ErrUpstreamUnreachable, got %v", err)
		}
	})

	t.Run("bare array response", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("national_id"); got != "30303030303030" {
				t.Errorf("expected normalized id in query, got %q", got)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("expected bearer auth, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"full_name":"أحمد","status":"approved","submitted_at":"2025-06-01T10:00:00Z"}]`))
		})
		defer server.Close()

		apps, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if err != nil {
			t.Fatalf("SearchByNationalID failed: %v", err)
		}
		if len(apps) != 1 {
			t.Fatalf("expected 1 record, got %d", len(apps))
		}
		if apps[0].Status != models.StatusApproved {
			t.Errorf("expected approved, got %s", apps[0].Status)
		}
		if apps[0].SubmittedAt.IsZero() {
			t.Error("expected parsed submission time")
		}
	})

	t.Run("envelope with found false", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"found":false,"results":[]}`))
		})
		defer server.Close()

		apps, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if err != nil {
			t.Fatalf("found=false must not be an error, got %v", err)
		}
		if apps != nil {
			t.Errorf("expected nil results, got %v", apps)
		}
	})

	t.Run("envelope with results", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"found":true,"results":[{"name":"باسم","state":"in_review"}]}`))
		})
		defer server.Close()

		apps, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if err != nil {
			t.Fatalf("SearchByNationalID failed: %v", err)
		}
		if len(apps) != 1 || apps[0].FullName != "باسم" {
			t.Fatalf("unexpected results: %+v", apps)
		}
		if apps[0].Status != models.StatusReview {
			t.Errorf("state synonym must normalize to review, got %s", apps[0].Status)
		}
	})

	t.Run("undecodable body maps to server sentinel", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>proxy error</html>`))
		})
		defer server.Close()

		_, err := client.SearchByNationalID(context.Background(), "30303030303030")
		if !errors.Is(err, repositories.ErrUpstreamServer) {
			t.Errorf("expected ErrUpstreamServer, got %v", err)
		}
	})
}

func TestMapRecord(t *testing.T) {
	t.Run("field priority", func(t *testing.T) {
		// full_name outranks name; submittedAt outranks created_at.
		app := MapRecord(map[string]interface{}{
			"full_name":  "الاسم الرسمي",
			"name":       "الاسم البديل",
			"submittedAt": "2025-06-01T10:00:00Z",
			"created_at": "2020-01-01T00:00:00Z",
		}, "30303030303030")

		if app.FullName != "الاسم الرسمي" {
			t.Errorf("expected full_name to win, got %q", app.FullName)
		}
		if app.SubmittedAt.Year() != 2025 {
			t.Errorf("expected submittedAt to win, got %v", app.SubmittedAt)
		}
	})

	t.Run("date layouts", func(t *testing.T) {
		tests := []struct {
			raw  string
			year int
		}{
			{"2025-06-01T10:00:00Z", 2025},
			{"2025-06-01 10:00:00", 2025},
			{"2025-06-01", 2025},
			{"June 1st", 1}, // unparseable falls back to the zero time
		}
		for _, tt := range tests {
			app := MapRecord(map[string]interface{}{"date": tt.raw}, "30303030303030")
			if app.SubmittedAt.Year() != tt.year {
				t.Errorf("date %q: year = %d, want %d", tt.raw, app.SubmittedAt.Year(), tt.year)
			}
		}
	})

	t.Run("status synonyms", func(t *testing.T) {
		tests := map[string]models.ApplicationStatus{
			"pending":      models.StatusSubmitted,
			"under_review": models.StatusReview,
			"accepted":     models.StatusApproved,
			"declined":     models.StatusRejected,
			"mystery":      models.StatusSubmitted,
		}
		for raw, want := range tests {
			app := MapRecord(map[string]interface{}{"status": raw}, "30303030303030")
			if app.Status != want {
				t.Errorf("status %q: got %s, want %s", raw, app.Status, want)
			}
		}
	})

	t.Run("missing date keeps zero time", func(t *testing.T) {
		app := MapRecord(map[string]interface{}{"full_name": "بدون تاريخ"}, "30303030303030")
		if !app.SubmittedAt.IsZero() {
			t.Errorf("expected zero time, got %v", app.SubmittedAt)
		}
	})
}
