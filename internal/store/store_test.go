package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/studyflow/internal/llm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKV_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	type payload struct {
		Name  string         `json:"name"`
		Score float64        `json:"score"`
		Tags  []string       `json:"tags"`
		Meta  map[string]int `json:"meta"`
	}

	in := payload{
		Name:  "cell biology",
		Score: 87.5,
		Tags:  []string{"mitosis", "anaphase"},
		Meta:  map[string]int{"attempts": 3},
	}
	s.Save(ctx, "k", in)

	var out payload
	if !s.Load(ctx, "k", &out) {
		t.Fatal("Load returned false for saved key")
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestKV_LoadMissingKeyKeepsDefault(t *testing.T) {
	s := openTestStore(t)

	out := map[string]int{"default": 1}
	if s.Load(context.Background(), "absent", &out) {
		t.Fatal("Load returned true for missing key")
	}
	if out["default"] != 1 {
		t.Errorf("default value was clobbered: %v", out)
	}
}

func TestKV_Overwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "k", "first")
	s.Save(ctx, "k", "second")

	var out string
	if !s.Load(ctx, "k", &out) {
		t.Fatal("Load returned false")
	}
	if out != "second" {
		t.Errorf("got %q, want second", out)
	}
}

func TestKV_LoadUndecodableValueReturnsFalse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "k", "a string")

	var out int
	if s.Load(ctx, "k", &out) {
		t.Fatal("Load returned true for value of wrong shape")
	}
}

func TestRequestLog_Append(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.AppendRequest(ctx, llm.RequestLogEntry{
		Model:        "mock",
		Purpose:      "quiz",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    12,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = s.AppendRequest(ctx, llm.RequestLogEntry{
		Model:        "mock",
		Purpose:      "grading",
		Success:      false,
		ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	stats, err := s.RequestStatsSince(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want Total=2 Failed=1", stats)
	}
	if stats.InputTokens != 100 || stats.OutputTokens != 50 {
		t.Errorf("token totals = %+v", stats)
	}
}

func TestRequestLog_RecentRequests(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, purpose := range []string{"summary", "quiz", "grading"} {
		if err := s.AppendRequest(ctx, llm.RequestLogEntry{Model: "mock", Purpose: purpose, Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	rows, err := s.RecentRequests(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Newest first.
	if rows[0].Purpose != "grading" || rows[1].Purpose != "quiz" {
		t.Errorf("order = %s, %s", rows[0].Purpose, rows[1].Purpose)
	}
	if rows[0].RequestID == "" || rows[0].RequestID == rows[1].RequestID {
		t.Errorf("request ids not unique: %q %q", rows[0].RequestID, rows[1].RequestID)
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, KeyProgress, map[string]int{"streak": 4})
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var out map[string]int
	if s.Load(ctx, KeyProgress, &out) {
		t.Error("progress survived reset")
	}
}
