package graphql_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/api/graphql"
	"github.com/ispcore/ipam/internal/api/middleware"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

const testAPIKey = "test-key"

type testGraphQLMocks struct {
	engine       *mocks.MockEngine
	orchestrator *mocks.MockOrchestrator
	router       *gin.Engine
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func setupGraphQL(t *testing.T) *testGraphQLMocks {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	tm := &testGraphQLMocks{
		engine:       mocks.NewMockEngine(ctrl),
		orchestrator: mocks.NewMockOrchestrator(ctrl),
		router:       gin.New(),
	}

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)
	graphql.SetupRoutes(tm.router, graphql.NewHandler(tm.engine, tm.orchestrator, auth))
	return tm
}

func (tm *testGraphQLMocks) query(t *testing.T, query string, variables map[string]interface{}, authorized bool) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestGraphQL_PoolsReturnsOnlySelectedFields(t *testing.T) {
	tm := setupGraphQL(t)

	tm.engine.EXPECT().ListPools(gomock.Any()).Return([]schema.IPPool{
		{ID: 1, Name: "core", StartIP: "10.0.0.1", EndIP: "10.0.0.254", UsageClass: "pppoe", Status: domain.ResourceStatusActive},
		{ID: 2, Name: "edge", StartIP: "10.1.0.1", EndIP: "10.1.0.254", UsageClass: "hotspot", Status: domain.ResourceStatusActive},
	}, nil)

	resp := tm.query(t, `{ pools { id name kind: __typename } }`, nil, false)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t,
		`[{"id":"1","name":"core","kind":"Pool"},{"id":"2","name":"edge","kind":"Pool"}]`,
		string(resp.Data["pools"]))
}

func TestGraphQL_PoolUtilizationWithVariables(t *testing.T) {
	tm := setupGraphQL(t)

	tm.engine.EXPECT().GetPoolUtilization(gomock.Any(), uint64(7)).Return(&ipam.Utilization{
		PoolID:             7,
		Total:              380,
		Allocated:          15,
		Available:          365,
		UtilizationPercent: 3.95,
	}, nil)

	resp := tm.query(t,
		`query Usage($id: Uint64!) { pool_utilization(pool_id: $id) { pool_id allocated utilization_percent } }`,
		map[string]interface{}{"id": "7"}, false)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t,
		`{"pool_id":"7","allocated":15,"utilization_percent":3.95}`,
		string(resp.Data["pool_utilization"]))
}

func TestGraphQL_NestedMigrationState(t *testing.T) {
	tm := setupGraphQL(t)

	tm.orchestrator.EXPECT().GetProgress(gomock.Any(), "run-1").Return(&coordination.Progress{
		Processed: 4, Total: 10, Percentage: 40,
	}, nil)
	tm.orchestrator.EXPECT().GetStatus(gomock.Any(), "run-1").Return(&coordination.StatusRecord{
		Status: domain.MigrationStatusRunning,
	}, nil)
	tm.orchestrator.EXPECT().GetMetadata(gomock.Any(), "run-1").Return(&coordination.Metadata{
		RunID: "run-1", OldPoolID: 1, NewPoolID: 2, ProfileID: 3, StartedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	resp := tm.query(t,
		`{ migration(run_id: "run-1") { run_id progress { processed percentage } status { status } metadata { profile_id started_at } } }`,
		nil, false)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{
		"run_id": "run-1",
		"progress": {"processed": 4, "percentage": 40},
		"status": {"status": "running"},
		"metadata": {"profile_id": "3", "started_at": "2025-01-01T00:00:00Z"}
	}`, string(resp.Data["migration"]))
}

func TestGraphQL_UnknownMigrationIsNull(t *testing.T) {
	tm := setupGraphQL(t)

	tm.orchestrator.EXPECT().GetProgress(gomock.Any(), "gone").Return(nil, nil)
	tm.orchestrator.EXPECT().GetStatus(gomock.Any(), "gone").Return(nil, nil)
	tm.orchestrator.EXPECT().GetMetadata(gomock.Any(), "gone").Return(nil, nil)

	resp := tm.query(t, `{ migration(run_id: "gone") { run_id } }`, nil, false)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "null", string(resp.Data["migration"]))
}

func TestGraphQL_DomainErrorsUseRestCodes(t *testing.T) {
	tm := setupGraphQL(t)

	tm.engine.EXPECT().GetPool(gomock.Any(), uint64(9)).Return(nil, domain.ErrPoolNotFound)
	tm.engine.EXPECT().ListPools(gomock.Any()).Return([]schema.IPPool{{ID: 1, Name: "core"}}, nil)

	resp := tm.query(t, `{ pool(id: 9) { id } pools { name } }`, nil, false)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "not_found", resp.Errors[0].Extensions["code"])
	assert.Equal(t, []interface{}{"pool"}, resp.Errors[0].Path)
	assert.Equal(t, "null", string(resp.Data["pool"]))
	assert.JSONEq(t, `[{"name":"core"}]`, string(resp.Data["pools"]))
}

func TestGraphQL_InfrastructureErrorIsHidden(t *testing.T) {
	tm := setupGraphQL(t)

	tm.engine.EXPECT().ListPools(gomock.Any()).
		Return(nil, domain.NewInfrastructureError("list pools", assert.AnError))

	resp := tm.query(t, `{ pools { id } }`, nil, false)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "database_error", resp.Errors[0].Extensions["code"])
	assert.NotContains(t, resp.Errors[0].Message, assert.AnError.Error())
}

func TestGraphQL_AllocationsValidatesPaging(t *testing.T) {
	tm := setupGraphQL(t)

	// no engine expectation: an invalid page never reaches the store
	resp := tm.query(t, `{ allocations(limit: 0) { total } }`, nil, false)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "validation_failed", resp.Errors[0].Extensions["code"])
}

func TestGraphQL_AllocationsPassesFilter(t *testing.T) {
	tm := setupGraphQL(t)

	tm.engine.EXPECT().ListAllocations(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter store.AllocationFilter) ([]schema.IPAllocation, uint64, error) {
			require.NotNil(t, filter.SubnetID)
			assert.Equal(t, uint64(4), *filter.SubnetID)
			require.NotNil(t, filter.Status)
			assert.Equal(t, domain.AllocationStatusAllocated, *filter.Status)
			assert.Equal(t, 10, filter.Limit)
			assert.Equal(t, uint64(20), filter.Offset)
			return []schema.IPAllocation{{ID: 30, SubnetID: 4, IPAddress: "10.0.0.9", Username: "alice"}}, 21, nil
		})

	resp := tm.query(t,
		`{ allocations(subnet_id: "4", status: "allocated", limit: 10, offset: 20) { total offset allocations { ip_address username } } }`,
		nil, false)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t,
		`{"total":"21","offset":"20","allocations":[{"ip_address":"10.0.0.9","username":"alice"}]}`,
		string(resp.Data["allocations"]))
}

func TestGraphQL_ValidateMigrationRequiresAuth(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		tm := setupGraphQL(t)

		resp := tm.query(t, `{ validate_migration(old_pool_id: 1, new_pool_id: 2, profile_id: 3) { valid } }`, nil, false)
		require.NotEmpty(t, resp.Errors)
		assert.Contains(t, resp.Errors[0].Message, "Authentication required")
	})

	t.Run("api key", func(t *testing.T) {
		tm := setupGraphQL(t)

		tm.orchestrator.EXPECT().ValidateMigration(gomock.Any(), uint64(1), uint64(2), uint64(3)).
			Return(&migration.ValidationResult{Valid: true, Message: "ok", CustomerCount: 12, AvailableIPs: 200})

		resp := tm.query(t, `{ validate_migration(old_pool_id: 1, new_pool_id: 2, profile_id: 3) { valid customer_count } }`, nil, true)
		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"valid":true,"customer_count":12}`, string(resp.Data["validate_migration"]))
	})
}

func TestGraphQL_RejectsMutationsAndUnknownFields(t *testing.T) {
	tm := setupGraphQL(t)

	// no expectations: neither document may reach a resolver
	resp := tm.query(t, `mutation { pools { id } }`, nil, true)
	assert.NotEmpty(t, resp.Errors)
	assert.Nil(t, resp.Data["pools"])

	resp = tm.query(t, `{ pools { id secret } }`, nil, false)
	assert.NotEmpty(t, resp.Errors)
	assert.Nil(t, resp.Data["pools"])
}

func TestGraphQL_ServesSDL(t *testing.T) {
	tm := setupGraphQL(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql/schema", nil)
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "type Query")
	assert.Contains(t, w.Body.String(), "pool_utilization(")
	assert.NotContains(t, w.Body.String(), "__schema")
}
