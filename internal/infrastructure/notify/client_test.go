package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/platform/resilience"
)

func sampleMatch() match.Match {
	kickoff := time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)
	return match.Match{
		ID:         "wc-m001",
		Number:     1,
		HomeTeamID: "mex",
		AwayTeamID: "rsa",
		Venue:      "Estadio Azteca, Mexico City",
		KickoffAt:  kickoff,
		LockAt:     match.LockInstant(kickoff),
		Status:     match.StatusScheduled,
	}
}

func TestClientSendMatchReminder_PostsPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/notifications" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer notify-key" {
			t.Fatalf("unexpected authorization header: %s", auth)
		}
		if err := jsoniter.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		APIKey:         "notify-key",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	if err := client.SendMatchReminder(context.Background(), "user-1", sampleMatch()); err != nil {
		t.Fatalf("send reminder failed: %v", err)
	}

	if got["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", got["user_id"])
	}
	if got["match_id"] != "wc-m001" {
		t.Fatalf("unexpected match_id: %v", got["match_id"])
	}
	if got["home_label"] != "mex" || got["away_label"] != "rsa" {
		t.Fatalf("unexpected side labels: %v / %v", got["home_label"], got["away_label"])
	}
}

func TestClientSendMatchReminder_UsesSlotLabelWhenUnresolved(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := jsoniter.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := sampleMatch()
	m.HomeTeamID = ""
	m.HomeSlot = "Winner Match 73"

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	if err := client.SendMatchReminder(context.Background(), "user-1", m); err != nil {
		t.Fatalf("send reminder failed: %v", err)
	}
	if got["home_label"] != "Winner Match 73" {
		t.Fatalf("unexpected home_label: %v", got["home_label"])
	}
}

func TestClientSendMatchReminder_BreakerOpensOnGatewayErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		if err := client.SendMatchReminder(context.Background(), "user-1", sampleMatch()); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop the third gateway call, got %d calls", calls.Load())
	}
}

func TestClientSendMatchReminder_RejectsEmptyUser(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://localhost:0"}, logging.NewNop())
	if err := client.SendMatchReminder(context.Background(), "  ", sampleMatch()); err == nil {
		t.Fatal("expected error for empty user id")
	}
}
