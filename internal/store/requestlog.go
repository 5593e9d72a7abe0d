package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyflow/internal/llm"
)

var _ llm.RequestLogger = (*Store)(nil)

// AppendRequest records one LLM call in the append-only request log. Each
// row gets a fresh UUID as a stable reference independent of the
// autoincrement id.
func (s *Store) AppendRequest(ctx context.Context, entry llm.RequestLogEntry) error {
	success := 0
	if entry.Success {
		success = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (request_id, created_at, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339Nano),
		entry.Model,
		entry.Purpose,
		entry.InputTokens,
		entry.OutputTokens,
		entry.LatencyMs,
		success,
		entry.ErrorMessage,
	)
	return err
}

// RequestRow is one persisted request log entry.
type RequestRow struct {
	RequestID    string
	CreatedAt    time.Time
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RecentRequests returns the newest request log entries, newest first.
func (s *Store) RecentRequests(ctx context.Context, limit int) ([]RequestRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, created_at, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var r RequestRow
		var createdAt string
		var success int
		if err := rows.Scan(&r.RequestID, &createdAt, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &success, &r.ErrorMessage); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.Success = success == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// RequestStats summarizes the request log for `studyflow llm`.
type RequestStats struct {
	Total        int
	Failed       int
	InputTokens  int
	OutputTokens int
}

// RequestStatsSince aggregates request log entries at or after from.
func (s *Store) RequestStatsSince(ctx context.Context, from time.Time) (RequestStats, error) {
	var stats RequestStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0)
		 FROM llm_requests WHERE created_at >= ?`,
		from.UTC().Format(time.RFC3339Nano),
	).Scan(&stats.Total, &stats.Failed, &stats.InputTokens, &stats.OutputTokens)
	return stats, err
}
