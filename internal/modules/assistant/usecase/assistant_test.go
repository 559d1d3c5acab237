package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	assistantout "lockedin/internal/modules/assistant/adapter/out"
	"lockedin/internal/modules/assistant/domain"
	"lockedin/internal/modules/assistant/dto"
	assistantin "lockedin/internal/modules/assistant/port/in"
	"lockedin/internal/modules/assistant/service"
	"lockedin/internal/modules/assistant/usecase"
	apperrors "lockedin/internal/platform/errors"
)

type fakeGoals []domain.GoalSummary

func (f fakeGoals) ActiveGoals(context.Context) ([]domain.GoalSummary, error) { return f, nil }

type fakeSessions []domain.SessionSummary

func (f fakeSessions) RecentSessions(_ context.Context, limit int) ([]domain.SessionSummary, error) {
	if len(f) > limit {
		return f[:limit], nil
	}
	return f, nil
}

func newAssistant(t *testing.T, url string, timeout time.Duration) (assistantin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	sessions := make(fakeSessions, 0, 12)
	for i := 0; i < 12; i++ {
		sessions = append(sessions, domain.SessionSummary{Date: "2026-03-10", Duration: 25})
	}
	svc := service.NewAssistantService(
		fakeGoals{{Title: "Learn Go", Progress: 40, Status: "active"}},
		sessions,
		assistantout.NewDeviceFileStore(dir),
		assistantout.NewHTTPChatClient(url, nil),
		timeout,
	)
	return usecase.NewInteractor(svc), dir
}

func TestAskSendsSnapshotWithDeviceID(t *testing.T) {
	t.Parallel()
	var got dto.ChatRequest
	var device string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		device = r.Header.Get("x-device-id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(dto.ChatResponse{Message: "keep going"})
	}))
	defer srv.Close()

	uc, dir := newAssistant(t, srv.URL, time.Second)
	out, err := uc.Ask(context.Background(), dto.AskInput{Message: "how am I doing?"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if out.Message != "keep going" {
		t.Fatalf("unexpected reply %q", out.Message)
	}
	if got.Message != "how am I doing?" || len(got.Goals) != 1 || got.Goals[0].Progress != 40 || len(got.Sessions) != domain.MaxSessions {
		t.Fatalf("unexpected request %+v", got)
	}
	stored, err := os.ReadFile(filepath.Join(dir, "device-id"))
	if err != nil {
		t.Fatalf("device id not stored: %v", err)
	}
	if device == "" || strings.TrimSpace(string(stored)) != device {
		t.Fatalf("device header %q does not match stored %q", device, stored)
	}

	if _, err := uc.Ask(context.Background(), dto.AskInput{Message: "again"}); err != nil {
		t.Fatalf("second ask: %v", err)
	}
	again, _ := os.ReadFile(filepath.Join(dir, "device-id"))
	if string(again) != string(stored) {
		t.Fatalf("device id should be stable")
	}
}

func TestAskValidatesBeforeSending(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	uc, _ := newAssistant(t, srv.URL, time.Second)
	for _, msg := range []string{"", strings.Repeat("x", domain.MaxMessageLen+1)} {
		if _, err := uc.Ask(context.Background(), dto.AskInput{Message: msg}); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
	if calls != 0 {
		t.Fatalf("invalid messages must not reach the gateway")
	}
}

func TestAskMapsFailures(t *testing.T) {
	t.Parallel()
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"too many requests"}`))
	}))
	defer limited.Close()
	uc, _ := newAssistant(t, limited.URL, time.Second)
	_, err := uc.Ask(context.Background(), dto.AskInput{Message: "hi"})
	if !errors.Is(err, apperrors.ErrAssistantUnavailable) || !strings.Contains(err.Error(), "too many requests") {
		t.Fatalf("expected unavailable with gateway text, got %v", err)
	}

	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)
	uc, _ = newAssistant(t, slow.URL, 30*time.Millisecond)
	if _, err := uc.Ask(context.Background(), dto.AskInput{Message: "hi"}); !errors.Is(err, apperrors.ErrAssistantTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestBuildSnapshotEmpty(t *testing.T) {
	t.Parallel()
	svc := service.NewAssistantService(fakeGoals{}, fakeSessions{}, nil, nil, 0)
	req, err := usecase.NewInteractor(svc).BuildSnapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	raw, _ := json.Marshal(req)
	if !strings.Contains(string(raw), `"goals":[]`) || !strings.Contains(string(raw), `"sessions":[]`) {
		t.Fatalf("empty snapshot must encode arrays, got %s", raw)
	}
}
