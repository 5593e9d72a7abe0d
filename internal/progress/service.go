package progress

import (
	"context"
	"time"

	"github.com/abhisek/studyflow/internal/store"
)

// Service records attempts into the persisted aggregate and serves
// dashboard reads. All writes are whole-record read-modify-write against
// the kv store; there is exactly one writer per session.
type Service struct {
	kv  store.KV
	now func() time.Time
}

// NewService creates a progress service over the given store.
func NewService(kv store.KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

// Record loads the current aggregate, or a zero record if none persisted.
func (s *Service) Record(ctx context.Context) Record {
	var rec Record
	s.kv.Load(ctx, store.KeyProgress, &rec)
	return rec
}

// RecordAttempt appends a timestamped attempt for kind, recomputes the
// streak, and writes the aggregate back. Returns the updated record.
func (s *Service) RecordAttempt(ctx context.Context, kind Kind, a Attempt) Record {
	rec := s.Record(ctx)
	rec.Append(kind, a, s.now())
	s.kv.Save(ctx, store.KeyProgress, rec)
	return rec
}
