package rest_test

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ispcore/ipam/internal/api/rest/dto"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/workflows"
)

var snakeCase = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Every body the API writes, including the ones returned straight from the engine and orchestrator.
func TestResponseFieldsAreSnakeCase(t *testing.T) {
	bodies := []interface{}{
		dto.PoolResponse{},
		dto.SubnetResponse{},
		dto.AllocationResponse{},
		dto.AllocationHistoryResponse{},
		dto.AllocationListResponse{},
		dto.AvailableIPsResponse{},
		dto.ReleaseResponse{},
		dto.StartMigrationResponse{},
		dto.MigrationStateResponse{},
		dto.CancelMigrationResponse{},
		ipam.Utilization{},
		migration.ValidationResult{},
		migration.PoolSummary{},
		migration.RollbackResult{},
		migration.HistoryEntry{},
		workflows.MigrationSummary{},
		coordination.Metadata{},
		coordination.Progress{},
		coordination.StatusRecord{},
		coordination.RollbackRecord{},
		store.CleanupResult{},
		store.MigrationCandidate{},
	}

	for _, body := range bodies {
		typ := reflect.TypeOf(body)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			assert.Regexp(t, snakeCase, name, "%s.%s", typ.Name(), field.Name)
		}
	}
}
