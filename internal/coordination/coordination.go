package coordination

import (
	"context"
	"fmt"
	"time"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/domain"
)

const (
	// RunTTL is the expiry of metadata, status, backup and rollback records
	RunTTL = 24 * time.Hour
	// ProgressTTL is the expiry of the progress counters
	ProgressTTL = time.Hour
)

// Metadata describes what a migration run moves
type Metadata struct {
	RunID     string    `json:"run_id"`
	OldPoolID uint64    `json:"old_pool_id"`
	NewPoolID uint64    `json:"new_pool_id"`
	ProfileID uint64    `json:"profile_id"`
	StartedAt time.Time `json:"started_at"`
}

// Progress holds the counters a worker reports after every batch
type Progress struct {
	Processed       int      `json:"processed"`
	Total           int      `json:"total"`
	Failed          int      `json:"failed"`
	FailedUsernames []string `json:"failed_usernames"`
	Percentage      float64  `json:"percentage"`
}

// StatusRecord is the value of the status key
type StatusRecord struct {
	Status      domain.MigrationStatus `json:"status"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	CancelledAt *time.Time             `json:"cancelled_at,omitempty"`
	FinishedAt  *time.Time             `json:"finished_at,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Restored    *int                   `json:"restored,omitempty"`
	Failed      *int                   `json:"failed,omitempty"`
}

// Backup maps username to the address it held before the run touched it
type Backup map[string]string

// RollbackRecord is the outcome of a rollback
type RollbackRecord struct {
	Status          domain.MigrationStatus `json:"status"`
	Restored        int                    `json:"restored"`
	Failed          int                    `json:"failed"`
	FailedUsernames []string               `json:"failed_usernames"`
	RolledBackAt    time.Time              `json:"rolled_back_at"`
}

// Store keeps the short-lived, advisory state of migration runs.
// Every getter returns (nil, nil) when the key has expired or never existed;
// callers must treat that as "unknown", never as a status.
//
//go:generate mockgen -source=coordination.go -destination=../mocks/coordination.go -package=mocks -mock_names=Store=MockCoordinationStore
type Store interface {
	SetMetadata(ctx context.Context, runID string, metadata Metadata) error
	GetMetadata(ctx context.Context, runID string) (*Metadata, error)

	SetProgress(ctx context.Context, runID string, progress Progress) error
	GetProgress(ctx context.Context, runID string) (*Progress, error)

	SetStatus(ctx context.Context, runID string, status StatusRecord) error
	GetStatus(ctx context.Context, runID string) (*StatusRecord, error)
	// TransitionStatus writes status only while the stored status is one of from, or the key is
	// absent, and reports whether it wrote
	TransitionStatus(ctx context.Context, runID string, from []domain.MigrationStatus, status StatusRecord) (bool, error)

	SetBackup(ctx context.Context, runID string, backup Backup) error
	GetBackup(ctx context.Context, runID string) (Backup, error)

	SetRollback(ctx context.Context, runID string, record RollbackRecord) error
	GetRollback(ctx context.Context, runID string) (*RollbackRecord, error)
}

type redisStore struct {
	client adapter.RedisClient
	json   adapter.JSON
}

// NewRedisStore creates a coordination store on top of Redis
func NewRedisStore(client adapter.RedisClient, json adapter.JSON) Store {
	return &redisStore{client: client, json: json}
}

// key builds migration:{runID}:{suffix}
func key(runID, suffix string) string {
	return fmt.Sprintf("migration:%s:%s", runID, suffix)
}

func (s *redisStore) put(ctx context.Context, k string, v interface{}, ttl time.Duration) error {
	data, err := s.json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", k, err)
	}
	if err := s.client.SetEX(ctx, k, data, ttl); err != nil {
		return domain.NewInfrastructureError("write "+k, err)
	}
	return nil
}

// get decodes k into v and reports whether the key existed
func (s *redisStore) get(ctx context.Context, k string, v interface{}) (bool, error) {
	data, err := s.client.Get(ctx, k)
	if err != nil {
		if adapter.IsNil(err) {
			return false, nil
		}
		return false, domain.NewInfrastructureError("read "+k, err)
	}
	if err := s.json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", k, err)
	}
	return true, nil
}

func (s *redisStore) SetMetadata(ctx context.Context, runID string, metadata Metadata) error {
	return s.put(ctx, key(runID, "metadata"), metadata, RunTTL)
}

func (s *redisStore) GetMetadata(ctx context.Context, runID string) (*Metadata, error) {
	var m Metadata
	ok, err := s.get(ctx, key(runID, "metadata"), &m)
	if !ok || err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *redisStore) SetProgress(ctx context.Context, runID string, progress Progress) error {
	if progress.FailedUsernames == nil {
		progress.FailedUsernames = []string{}
	}
	return s.put(ctx, key(runID, "progress"), progress, ProgressTTL)
}

func (s *redisStore) GetProgress(ctx context.Context, runID string) (*Progress, error) {
	var p Progress
	ok, err := s.get(ctx, key(runID, "progress"), &p)
	if !ok || err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *redisStore) SetStatus(ctx context.Context, runID string, status StatusRecord) error {
	return s.put(ctx, key(runID, "status"), status, RunTTL)
}

func (s *redisStore) GetStatus(ctx context.Context, runID string) (*StatusRecord, error) {
	var st StatusRecord
	ok, err := s.get(ctx, key(runID, "status"), &st)
	if !ok || err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *redisStore) TransitionStatus(ctx context.Context, runID string, from []domain.MigrationStatus, status StatusRecord) (bool, error) {
	k := key(runID, "status")
	next, err := s.json.Marshal(status)
	if err != nil {
		return false, fmt.Errorf("failed to marshal %s: %w", k, err)
	}

	written, err := s.client.CompareAndSetEX(ctx, k, RunTTL, func(current []byte) ([]byte, bool, error) {
		if current == nil {
			return next, true, nil
		}
		var st StatusRecord
		if err := s.json.Unmarshal(current, &st); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal %s: %w", k, err)
		}
		for _, f := range from {
			if st.Status == f {
				return next, true, nil
			}
		}
		return nil, false, nil
	})
	if err != nil {
		return false, domain.NewInfrastructureError("transition "+k, err)
	}
	return written, nil
}

func (s *redisStore) SetBackup(ctx context.Context, runID string, backup Backup) error {
	return s.put(ctx, key(runID, "backup"), backup, RunTTL)
}

func (s *redisStore) GetBackup(ctx context.Context, runID string) (Backup, error) {
	var b Backup
	ok, err := s.get(ctx, key(runID, "backup"), &b)
	if !ok || err != nil {
		return nil, err
	}
	if b == nil {
		b = Backup{}
	}
	return b, nil
}

func (s *redisStore) SetRollback(ctx context.Context, runID string, record RollbackRecord) error {
	if record.FailedUsernames == nil {
		record.FailedUsernames = []string{}
	}
	return s.put(ctx, key(runID, "rollback"), record, RunTTL)
}

func (s *redisStore) GetRollback(ctx context.Context, runID string) (*RollbackRecord, error) {
	var r RollbackRecord
	ok, err := s.get(ctx, key(runID, "rollback"), &r)
	if !ok || err != nil {
		return nil, err
	}
	return &r, nil
}
