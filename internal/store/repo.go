package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests by purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM requests by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reads LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// EvaluationRecord is a stored evaluation. Payload holds the full result as
// JSON; the score columns are copies for listing without decoding it.
type EvaluationRecord struct {
	ID               string
	Sequence         int64
	CreatedAt        time.Time
	SentenceCount    int
	OverallScore     int
	Grade            string
	CEFR             string
	GrammarScore     int
	VocabularyScore  int
	ComplexityScore  int
	ReadabilityScore int
	Classifier       string
	Payload          json.RawMessage
}

// EvaluationRepo stores evaluation history.
type EvaluationRepo interface {
	// Save assigns an ID (when empty), a sequence and a timestamp (when
	// zero) and persists the record.
	Save(ctx context.Context, rec *EvaluationRecord) error

	// List returns records newest first.
	List(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error)

	// Get returns one record or ErrNotFound. A unique ID prefix is accepted.
	Get(ctx context.Context, id string) (*EvaluationRecord, error)
}
