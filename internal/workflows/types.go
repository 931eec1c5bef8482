package workflows

import (
	"math"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/store"
)

// MigrationRequest is the input of MigratePoolForProfile
type MigrationRequest struct {
	RunID     string `json:"run_id"`
	OldPoolID uint64 `json:"old_pool_id"`
	NewPoolID uint64 `json:"new_pool_id"`
	ProfileID uint64 `json:"profile_id"`
}

// MigrationSummary is the outcome of a run, stored as the run index summary
type MigrationSummary struct {
	RunID           string                 `json:"run_id"`
	Status          domain.MigrationStatus `json:"status"`
	Total           int                    `json:"total"`
	Processed       int                    `json:"processed"`
	Succeeded       int                    `json:"succeeded"`
	Failed          int                    `json:"failed"`
	FailedUsernames []string               `json:"failed_usernames"`
}

// Percentage is processed/total rounded to two decimals; 100 for an empty run
func (s *MigrationSummary) Percentage() float64 {
	if s.Total == 0 {
		return 100
	}
	return math.Round(float64(s.Processed)/float64(s.Total)*10000) / 100
}

// ReassignBatchInput is one batch of subscribers to re-home
type ReassignBatchInput struct {
	RunID      string                     `json:"run_id"`
	NewPoolID  uint64                     `json:"new_pool_id"`
	Candidates []store.MigrationCandidate `json:"candidates"`
}

// BatchResult counts the outcome of one batch.
// Cancelled is set when the run was cancelled before every candidate was attempted;
// Processed then only counts the attempted ones.
type BatchResult struct {
	Processed       int      `json:"processed"`
	Succeeded       int      `json:"succeeded"`
	Failed          int      `json:"failed"`
	FailedUsernames []string `json:"failed_usernames"`
	Cancelled       bool     `json:"cancelled"`
}

// FinishInput closes a run
type FinishInput struct {
	Request MigrationRequest       `json:"request"`
	Status  domain.MigrationStatus `json:"status"`
	Summary *MigrationSummary      `json:"summary,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
