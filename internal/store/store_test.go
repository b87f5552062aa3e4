package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
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
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
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

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"llm_request_events", "evaluations", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "grammar-classify"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	// The sequence continues after reopening.
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 2 {
		t.Errorf("next sequence = %d, want 2", seq)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "grammar-classify", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"results":[]}`},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "grammar-classify", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "other", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].Purpose != "other" || all[2].ResponseBody != `{"results":[]}` {
		t.Errorf("events not newest first: %+v", all)
	}
	if all[1].Success || all[1].ErrorMessage != "rate limited" {
		t.Errorf("failed event = %+v", all[1])
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", all[0].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "grammar-classify"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != all[1].Sequence {
		t.Errorf("limited = %+v", limited)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[2].Sequence, Before: all[0].Sequence})
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if len(after) != 1 || after[0].ID != all[1].ID {
		t.Errorf("range = %+v", after)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RequestBody != "[user]\nhi" || got.InputTokens != 100 {
		t.Errorf("get = %+v", got)
	}

	_, err = repo.GetLLMEvent(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "grammar-classify", InputTokens: 100, OutputTokens: 40, LatencyMs: 300},
		{Model: "gpt-4o-mini", Purpose: "grammar-classify", InputTokens: 50, OutputTokens: 10, LatencyMs: 100},
		{Model: "gemini-2.0-flash", Purpose: "adhoc", InputTokens: 7, OutputTokens: 3, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	want := []LLMUsage{
		{Purpose: "adhoc", Calls: 1, InputTokens: 7, OutputTokens: 3, AvgLatencyMs: 50},
		{Purpose: "grammar-classify", Calls: 2, InputTokens: 150, OutputTokens: 50, AvgLatencyMs: 200},
	}
	if len(byPurpose) != len(want) {
		t.Fatalf("usage = %+v, want %+v", byPurpose, want)
	}
	for i := range want {
		if byPurpose[i] != want[i] {
			t.Errorf("usage[%d] = %+v, want %+v", i, byPurpose[i], want[i])
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gpt-4o-mini" || byModel[1].Calls != 2 || byModel[1].InputTokens != 150 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestEvaluations(t *testing.T) {
	s := openTestStore(t)
	repo := s.EvaluationRepo()
	ctx := context.Background()

	first := &EvaluationRecord{
		SentenceCount: 2, OverallScore: 59, Grade: "D", CEFR: "A2",
		GrammarScore: 72, VocabularyScore: 54, ComplexityScore: 33, ReadabilityScore: 73,
		Classifier: "rules",
		Payload:    json.RawMessage(`{"overall":{"score":59}}`),
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == "" || first.Sequence == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("save did not fill id/sequence/time: %+v", first)
	}

	second := &EvaluationRecord{SentenceCount: 1, OverallScore: 90, Grade: "A+", CEFR: "C1", Payload: json.RawMessage(`{}`)}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	list, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("list = %+v", list)
	}

	limited, err := repo.List(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("limited = %+v", limited)
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.GrammarScore != 72 || got.Classifier != "rules" || string(got.Payload) != `{"overall":{"score":59}}` {
		t.Errorf("get = %+v", got)
	}
	if got.CreatedAt.UnixMilli() != first.CreatedAt.UnixMilli() {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, first.CreatedAt)
	}

	byPrefix, err := repo.Get(ctx, second.ID[:8])
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	if byPrefix.ID != second.ID {
		t.Errorf("prefix lookup = %s, want %s", byPrefix.ID, second.ID)
	}

	if _, err := repo.Get(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "grammar-classify"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rec := &EvaluationRecord{Payload: json.RawMessage(`{}`)}
	if err := s.EvaluationRepo().Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Sequence >= rec.Sequence {
		t.Errorf("event sequence %d should precede evaluation sequence %d", events[0].Sequence, rec.Sequence)
	}
}
