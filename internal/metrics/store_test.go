package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"ovona-planner/internal/database"
	"ovona-planner/internal/llm"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndGetDailyUsage(t *testing.T) {
	store := setupTestStore(t)

	metrics := []ExecutionMetric{
		{AgentName: "Planner", Model: "llama-3.3-70b-versatile", PromptTokens: 100, CompletionTokens: 300, LatencyMS: 1200},
		{AgentName: "Planner", Model: "llama-3.3-70b-versatile", PromptTokens: 50, CompletionTokens: 150, LatencyMS: 800},
	}
	for _, m := range metrics {
		if err := store.Record(m); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage returned error: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].TotalPrompt != 150 {
		t.Errorf("Expected 150 prompt tokens, got %d", usage[0].TotalPrompt)
	}
	if usage[0].TotalCompletion != 450 {
		t.Errorf("Expected 450 completion tokens, got %d", usage[0].TotalCompletion)
	}
	if usage[0].TotalExecution != 2 {
		t.Errorf("Expected 2 executions, got %d", usage[0].TotalExecution)
	}
}

func TestRecordMeta(t *testing.T) {
	store := setupTestStore(t)

	meta := llm.CallMeta{
		AgentName: "Planner",
		Usage:     llm.TokenUsage{PromptTokens: 120, CompletionTokens: 340, Model: "gemini-1.5-flash"},
		Latency:   2 * time.Second,
	}
	if err := store.RecordMeta(meta); err != nil {
		t.Fatalf("RecordMeta returned error: %v", err)
	}

	usage, err := store.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("GetDailyUsage returned error: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalExecution != 1 {
		t.Fatalf("Expected 1 recorded execution, got %v", usage)
	}
}

func TestRecordMeta_SkipsZeroTokenCalls(t *testing.T) {
	store := setupTestStore(t)

	if err := store.RecordMeta(llm.CallMeta{AgentName: "Planner"}); err != nil {
		t.Fatalf("RecordMeta returned error: %v", err)
	}

	usage, err := store.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("GetDailyUsage returned error: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("Expected zero-token call skipped, got %v", usage)
	}
}

func TestCleanup(t *testing.T) {
	store := setupTestStore(t)

	old := ExecutionMetric{
		AgentName:    "Planner",
		Model:        "llama-3.3-70b-versatile",
		PromptTokens: 10,
		Timestamp:    time.Now().AddDate(0, 0, -30).UTC(),
	}
	recent := ExecutionMetric{
		AgentName:    "Planner",
		Model:        "llama-3.3-70b-versatile",
		PromptTokens: 20,
	}
	if err := store.Record(old); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Record(recent); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	removed, err := store.Cleanup(14)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 row removed, got %d", removed)
	}

	usage, err := store.GetDailyUsage(60)
	if err != nil {
		t.Fatalf("GetDailyUsage returned error: %v", err)
	}
	if len(usage) != 1 {
		t.Errorf("Expected only the recent metric remaining, got %v", usage)
	}
}

func TestMapUsage(t *testing.T) {
	m := MapUsage("Planner", llm.TokenUsage{PromptTokens: 5, CompletionTokens: 7, Model: "test"}, 1500*time.Millisecond)
	if m.AgentName != "Planner" || m.Model != "test" {
		t.Errorf("Expected agent/model carried through, got %+v", m)
	}
	if m.LatencyMS != 1500 {
		t.Errorf("Expected latency 1500ms, got %d", m.LatencyMS)
	}
	if m.Timestamp.IsZero() {
		t.Error("Expected timestamp populated")
	}
}
