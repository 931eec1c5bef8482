package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/api/middleware"
	"github.com/ispcore/ipam/internal/api/rest"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

const testAPIKey = "test-key"

type testHandlerMocks struct {
	engine       *mocks.MockEngine
	orchestrator *mocks.MockOrchestrator
	router       *gin.Engine
}

func setupTestRouter(t *testing.T) *testHandlerMocks {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		engine:       mocks.NewMockEngine(ctrl),
		orchestrator: mocks.NewMockOrchestrator(ctrl),
		router:       gin.New(),
	}

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)
	rest.SetupRoutes(tm.router, rest.NewHandler(tm.engine, tm.orchestrator), auth)
	return tm
}

func (tm *testHandlerMocks) do(method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAllocateIP(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().
		AllocateIP(gomock.Any(), uint64(5), "aa:bb:cc:dd:ee:ff", "alice", ipam.AllocateOptions{}).
		Return(&schema.IPAllocation{
			ID:         11,
			SubnetID:   5,
			IPAddress:  "10.0.0.2",
			MACAddress: "aa:bb:cc:dd:ee:ff",
			Username:   "alice",
			Status:     domain.AllocationStatusAllocated,
		}, nil)

	w := tm.do(http.MethodPost, "/api/v1/ipam/allocations", map[string]interface{}{
		"subnet_id":   5,
		"mac_address": "aa:bb:cc:dd:ee:ff",
		"username":    "alice",
	}, true)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "10.0.0.2", body["ip_address"])
	assert.Equal(t, "allocated", body["status"])
}

func TestAllocateIP_RequiresAuth(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodPost, "/api/v1/ipam/allocations", map[string]interface{}{
		"subnet_id":   5,
		"mac_address": "aa:bb:cc:dd:ee:ff",
		"username":    "alice",
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeError(t, w)["code"])
}

func TestAllocateIP_NoCapacity(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().AllocateIP(gomock.Any(), uint64(5), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &domain.NoCapacityError{SubnetID: 5})

	w := tm.do(http.MethodPost, "/api/v1/ipam/allocations", map[string]interface{}{
		"subnet_id":   5,
		"mac_address": "aa:bb:cc:dd:ee:ff",
		"username":    "alice",
	}, true)

	assert.Equal(t, http.StatusConflict, w.Code)
	errBody := decodeError(t, w)
	assert.Equal(t, "no_capacity", errBody["code"])
	assert.Equal(t, "no addresses available in subnet 5", errBody["message"])
}

func TestAllocateIP_InvalidMAC(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().AllocateIP(gomock.Any(), uint64(5), "zz", "alice", gomock.Any()).
		Return(nil, domain.ErrInvalidMACAddress)

	w := tm.do(http.MethodPost, "/api/v1/ipam/allocations", map[string]interface{}{
		"subnet_id":   5,
		"mac_address": "zz",
		"username":    "alice",
	}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAllocateIP_MissingFields(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodPost, "/api/v1/ipam/allocations", map[string]interface{}{"subnet_id": 5}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_failed", decodeError(t, w)["code"])
}

func TestReleaseIP(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().ReleaseIP(gomock.Any(), uint64(11)).Return(true, nil)

	w := tm.do(http.MethodDelete, "/api/v1/ipam/allocations/11", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"released":true}`, w.Body.String())
}

func TestReleaseIP_AlreadyReleased(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().ReleaseIP(gomock.Any(), uint64(11)).Return(false, domain.ErrAlreadyReleased)

	w := tm.do(http.MethodDelete, "/api/v1/ipam/allocations/11", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReleaseIP_BadID(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodDelete, "/api/v1/ipam/allocations/abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPool_NotFound(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().GetPool(gomock.Any(), uint64(9)).Return(nil, domain.ErrPoolNotFound)

	w := tm.do(http.MethodGet, "/api/v1/ipam/pools/9", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPoolUtilization(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().GetPoolUtilization(gomock.Any(), uint64(1)).Return(&ipam.Utilization{
		PoolID:             1,
		Total:              380,
		Allocated:          15,
		Available:          365,
		UtilizationPercent: 3.95,
	}, nil)

	w := tm.do(http.MethodGet, "/api/v1/ipam/pools/1/utilization", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pool_id":1,"total":380,"allocated":15,"available":365,"utilization_percent":3.95}`, w.Body.String())
}

func TestListAllocations_Filter(t *testing.T) {
	tm := setupTestRouter(t)

	subnetID := uint64(5)
	status := domain.AllocationStatusAllocated
	tm.engine.EXPECT().ListAllocations(gomock.Any(), store.AllocationFilter{
		SubnetID: &subnetID,
		Status:   &status,
		Limit:    10,
		Offset:   20,
	}).Return([]schema.IPAllocation{{ID: 1, IPAddress: "10.0.0.2"}}, uint64(21), nil)

	w := tm.do(http.MethodGet, "/api/v1/ipam/allocations?subnet_id=5&status=allocated&limit=10&offset=20", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Allocations []map[string]interface{} `json:"allocations"`
		Total       uint64                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(21), body.Total)
	assert.Len(t, body.Allocations, 1)
}

func TestListAllocations_BadStatus(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodGet, "/api/v1/ipam/allocations?status=leased", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateSubnet_Overlap(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().CreateSubnet(gomock.Any(), store.CreateSubnetInput{
		PoolID:       1,
		Network:      "10.0.0.0",
		PrefixLength: 24,
	}).Return(nil, domain.ErrSubnetOverlap)

	w := tm.do(http.MethodPost, "/api/v1/ipam/subnets", map[string]interface{}{
		"pool_id":       1,
		"network":       "10.0.0.0",
		"prefix_length": 24,
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w)["code"])
}

func TestGetAvailableIPs(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().GetAvailableIPs(gomock.Any(), uint64(3)).Return([]string{"10.0.0.3", "10.0.0.4"}, nil)

	w := tm.do(http.MethodGet, "/api/v1/ipam/subnets/3/available-ips", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subnet_id":3,"count":2,"addresses":["10.0.0.3","10.0.0.4"]}`, w.Body.String())
}

func TestValidateMigration_InvalidIsStillOK(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().ValidateMigration(gomock.Any(), uint64(1), uint64(2), uint64(7)).
		Return(&migration.ValidationResult{
			Valid:         false,
			Message:       "Insufficient IP addresses. Need 50, available 40",
			CustomerCount: 50,
			AvailableIPs:  40,
		})

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations/validate", map[string]interface{}{
		"old_pool_id": 1, "new_pool_id": 2, "profile_id": 7,
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Need 50, available 40")
}

func TestStartMigration(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().StartMigration(gomock.Any(), uint64(1), uint64(2), uint64(7)).Return("run-1", nil)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations", map[string]interface{}{
		"old_pool_id": 1, "new_pool_id": 2, "profile_id": 7,
	}, true)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"run_id":"run-1"}`, w.Body.String())
}

func TestStartMigration_Conflict(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().StartMigration(gomock.Any(), uint64(1), uint64(2), uint64(7)).
		Return("", domain.ErrMigrationConflict)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations", map[string]interface{}{
		"old_pool_id": 1, "new_pool_id": 2, "profile_id": 7,
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStartMigration_SamePool(t *testing.T) {
	tm := setupTestRouter(t)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations", map[string]interface{}{
		"old_pool_id": 2, "new_pool_id": 2, "profile_id": 7,
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetMigration(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().GetProgress(gomock.Any(), "run-1").
		Return(&coordination.Progress{Processed: 1, Total: 2, Percentage: 50, FailedUsernames: []string{}}, nil)
	tm.orchestrator.EXPECT().GetStatus(gomock.Any(), "run-1").
		Return(&coordination.StatusRecord{Status: domain.MigrationStatusRunning}, nil)
	tm.orchestrator.EXPECT().GetMetadata(gomock.Any(), "run-1").Return(nil, nil)

	w := tm.do(http.MethodGet, "/api/v1/ipam/migrations/run-1", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["metadata"])
	assert.Equal(t, 50.0, body["progress"].(map[string]interface{})["percentage"])
}

func TestGetMigration_Expired(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().GetProgress(gomock.Any(), "gone").Return(nil, nil)
	tm.orchestrator.EXPECT().GetStatus(gomock.Any(), "gone").Return(nil, nil)
	tm.orchestrator.EXPECT().GetMetadata(gomock.Any(), "gone").Return(nil, nil)

	w := tm.do(http.MethodGet, "/api/v1/ipam/migrations/gone", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelMigration(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().CancelMigration(gomock.Any(), "run-1").Return(false, nil)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations/run-1/cancel", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cancelled":false}`, w.Body.String())
}

func TestRollbackMigration(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().Rollback(gomock.Any(), "run-1").
		Return(&migration.RollbackResult{Restored: 1, Failed: 1, FailedUsernames: []string{"bob"}}, nil)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations/run-1/rollback", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"restored":1,"failed":1,"failed_usernames":["bob"]}`, w.Body.String())
}

func TestRollbackMigration_NoBackup(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().Rollback(gomock.Any(), "run-9").Return(nil, domain.ErrBackupNotFound)

	w := tm.do(http.MethodPost, "/api/v1/ipam/migrations/run-9/rollback", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMigrations(t *testing.T) {
	tm := setupTestRouter(t)

	tm.orchestrator.EXPECT().GetMigrationHistory(gomock.Any(), 5).
		DoAndReturn(func(context.Context, int) ([]migration.HistoryEntry, error) {
			return []migration.HistoryEntry{{RunID: "run-1", RunStatus: domain.MigrationStatusCompleted}}, nil
		})

	w := tm.do(http.MethodGet, "/api/v1/ipam/migrations?limit=5", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"run_id":"run-1"`)
}

func TestInfrastructureErrorIsNotLeaked(t *testing.T) {
	tm := setupTestRouter(t)

	tm.engine.EXPECT().ListPools(gomock.Any()).
		Return(nil, domain.NewInfrastructureError("list pools", assert.AnError))

	w := tm.do(http.MethodGet, "/api/v1/ipam/pools", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
