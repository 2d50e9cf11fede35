package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	// Absent key.
	_, ok, err := kv.Load(ctx, "missing")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for absent key")
	}

	// Save and load.
	if err := kv.Save(ctx, KeyTracking, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := kv.Load(ctx, KeyTracking)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || string(v) != `{"a":1}` {
		t.Fatalf("load = %q, ok=%v", v, ok)
	}

	// Overwrite.
	if err := kv.Save(ctx, KeyTracking, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Load(ctx, KeyTracking)
	if string(v) != `{"a":2}` {
		t.Fatalf("after overwrite = %q", v)
	}

	// Remove, including an absent key.
	if err := kv.Remove(ctx, KeyTracking); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := kv.Remove(ctx, KeyTracking); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	_, ok, _ = kv.Load(ctx, KeyTracking)
	if ok {
		t.Fatal("expected key gone after remove")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq = %d, want %d", seq, want)
		}
	}
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	err := events.AppendAttempt(ctx, AttemptEventData{
		QuestionID: "q1", Domain: "preparar-datos", Level: "principiante",
		WasCorrect: true, TimeSpentMs: 1200,
	})
	if err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	err = events.AppendQuizCompletion(ctx, QuizEventData{
		SessionID: "s1", Mode: "standard", Domain: "any", Level: "any",
		TotalQuestions: 5, CorrectAnswers: 4, PointsEarned: 40, XPEarned: 130,
	})
	if err != nil {
		t.Fatalf("append quiz: %v", err)
	}

	err = events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "explanation", Success: true,
	})
	if err != nil {
		t.Fatalf("append llm: %v", err)
	}

	var attemptSeq, quizSeq, llmSeq int64
	if err := s.db.QueryRow("SELECT sequence FROM attempt_events").Scan(&attemptSeq); err != nil {
		t.Fatalf("attempt seq: %v", err)
	}
	if err := s.db.QueryRow("SELECT sequence FROM quiz_events").Scan(&quizSeq); err != nil {
		t.Fatalf("quiz seq: %v", err)
	}
	if err := s.db.QueryRow("SELECT sequence FROM llm_events").Scan(&llmSeq); err != nil {
		t.Fatalf("llm seq: %v", err)
	}
	if attemptSeq != 1 || quizSeq != 2 || llmSeq != 3 {
		t.Errorf("sequences = %d, %d, %d, want 1, 2, 3", attemptSeq, quizSeq, llmSeq)
	}
}

func TestRecentQuizzes(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := events.AppendQuizCompletion(ctx, QuizEventData{
			SessionID: string(rune('a' + i)), Mode: "standard",
			Domain: "any", Level: "any",
			TotalQuestions: 5, CorrectAnswers: i,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := events.RecentQuizzes(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "c" || got[1].SessionID != "b" {
		t.Errorf("order = %s, %s, want c, b", got[0].SessionID, got[1].SessionID)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.KV().Save(ctx, KeyProgress, []byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := s.Events().AppendAttempt(ctx, AttemptEventData{
		QuestionID: "q1", Domain: "modelar-datos", Level: "avanzado",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	_, ok, _ := s.KV().Load(ctx, KeyProgress)
	if ok {
		t.Error("kv entry survived reset")
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM attempt_events").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("attempt events after reset = %d", n)
	}
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := kv.Load(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("load = %q, ok=%v, err=%v", v, ok, err)
	}

	// Returned slice is a copy.
	v[0] = 'x'
	v2, _, _ := kv.Load(ctx, "k")
	if string(v2) != "v" {
		t.Error("stored value aliased by Load result")
	}

	if err := kv.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, ok, _ = kv.Load(ctx, "k")
	if ok {
		t.Error("key survived remove")
	}
}
