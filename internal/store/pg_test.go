package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain starts PostgreSQL (or uses TEST_DB_HOST) and loads db/init_pg_db.sql
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn, err := testDSN(ctx)
	if err != nil {
		fmt.Printf("Failed to prepare test database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	if err := initializeTestDatabase(testDB); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()
	terminateContainer(ctx)
	os.Exit(code)
}

func testDSN(ctx context.Context) (string, error) {
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		port := envOr("TEST_DB_PORT", "5432")
		name := envOr("TEST_DB_NAME", "test_db")
		fmt.Printf("Using external database: %s:%s/%s\n", host, port, name)
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, envOr("TEST_DB_USER", "postgres"), envOr("TEST_DB_PASSWORD", "postgres"), name), nil
	}

	var err error
	pgContainer, err = postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	return pgContainer.ConnectionString(ctx, "sslmode=disable")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func terminateContainer(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

// initializeTestDatabase executes the schema file
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaSQL, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql")) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// initPGTestDB hands each test a store bound to a transaction that is rolled back afterwards
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op; the transaction rollback in initPGTestDB does the work
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestAllocateAddress_Concurrent runs against committed data: the subnet row lock
// only serializes callers on separate connections.
func TestAllocateAddress_Concurrent(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}
	ctx := context.Background()
	st := NewPGStore(testDB)

	pool, err := st.CreatePool(ctx, CreatePoolInput{
		Name:    fmt.Sprintf("concurrency-%d", time.Now().UnixNano()),
		StartIP: "10.250.0.1",
		EndIP:   "10.250.0.30",
	})
	require.NoError(t, err)
	subnet, err := st.CreateSubnet(ctx, CreateSubnetInput{PoolID: pool.ID, Network: "10.250.0.0", PrefixLength: 27})
	require.NoError(t, err)

	t.Cleanup(func() {
		testDB.Where("subnet_id = ?", subnet.ID).Delete(&schema.IPAllocationHistory{})
		testDB.Where("subnet_id = ?", subnet.ID).Delete(&schema.IPAllocation{})
		testDB.Delete(&schema.IPPool{}, pool.ID)
	})

	const workers = 30 // the full capacity of a /27
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]uint64, workers)
		errs    []error
	)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allocation, err := st.AllocateAddress(ctx, AllocateAddressInput{
				SubnetID:   subnet.ID,
				MACAddress: fmt.Sprintf("02:00:00:00:00:%02x", i),
				Username:   fmt.Sprintf("user-%d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			results[allocation.IPAddress] = allocation.ID
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, results, workers, "every caller must receive a distinct address")

	var allocatedRows int64
	require.NoError(t, testDB.Model(&schema.IPAllocation{}).
		Where("subnet_id = ? AND status = ?", subnet.ID, domain.AllocationStatusAllocated).
		Count(&allocatedRows).Error)
	assert.Equal(t, int64(workers), allocatedRows)

	_, err = st.AllocateAddress(ctx, AllocateAddressInput{SubnetID: subnet.ID, MACAddress: "02:00:00:00:01:00", Username: "late"})
	var noCapacity *domain.NoCapacityError
	require.True(t, errors.As(err, &noCapacity))
	assert.Equal(t, subnet.ID, noCapacity.SubnetID)
}
