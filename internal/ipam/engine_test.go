package ipam_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

type testEngine struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	engine    ipam.Engine
	now       time.Time
}

func setupTestEngine(t *testing.T, cfg ipam.Config) *testEngine {
	t.Helper()
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	ctrl := gomock.NewController(t)
	te := &testEngine{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		now:       time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	te.clock.EXPECT().Now().Return(te.now).AnyTimes()
	te.engine = ipam.NewEngine(te.store, te.publisher, te.clock, cfg)
	return te
}

func TestComputeUtilization(t *testing.T) {
	tests := []struct {
		name   string
		counts []store.SubnetAllocationCount
		want   ipam.Utilization
	}{
		{
			name: "two subnets",
			counts: []store.SubnetAllocationCount{
				{SubnetID: 1, PrefixLength: 24, Allocated: 10},
				{SubnetID: 2, PrefixLength: 25, Allocated: 5},
			},
			want: ipam.Utilization{Total: 380, Allocated: 15, Available: 365, UtilizationPercent: 3.95},
		},
		{
			name: "empty pool",
			want: ipam.Utilization{},
		},
		{
			name: "point to point subnets have no hosts",
			counts: []store.SubnetAllocationCount{
				{SubnetID: 1, PrefixLength: 31},
				{SubnetID: 2, PrefixLength: 32},
			},
			want: ipam.Utilization{},
		},
		{
			name: "full subnet",
			counts: []store.SubnetAllocationCount{
				{SubnetID: 1, PrefixLength: 30, Allocated: 2},
			},
			want: ipam.Utilization{Total: 2, Allocated: 2, Available: 0, UtilizationPercent: 100},
		},
		{
			name: "rounding to two decimals",
			counts: []store.SubnetAllocationCount{
				{SubnetID: 1, PrefixLength: 24, Allocated: 1},
			},
			want: ipam.Utilization{Total: 254, Allocated: 1, Available: 253, UtilizationPercent: 0.39},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ipam.ComputeUtilization(tt.counts))
		})
	}
}

func TestEngine_AllocateIP(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().AllocateAddress(ctx, store.AllocateAddressInput{
		SubnetID:   3,
		MACAddress: "AA:BB:CC:DD:EE:01",
		Username:   "alice",
	}).Return(&schema.IPAllocation{
		ID:         11,
		SubnetID:   3,
		IPAddress:  "10.0.0.1",
		MACAddress: "AA:BB:CC:DD:EE:01",
		Username:   "alice",
		Status:     domain.AllocationStatusAllocated,
	}, nil)
	te.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			assert.Equal(t, domain.EventAllocationAllocated, e.Type)
			assert.Equal(t, "ipam.allocation.allocated", e.Subject())
			require.NotNil(t, e.Allocation)
			assert.Equal(t, uint64(11), e.Allocation.AllocationID)
			assert.Equal(t, te.now, e.OccurredAt)
			return nil
		})

	a, err := te.engine.AllocateIP(ctx, 3, "AA:BB:CC:DD:EE:01", "alice", ipam.AllocateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", a.IPAddress)
}

func TestEngine_AllocateIP_Lease(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{DefaultLease: time.Hour})
	ctx := context.Background()

	t.Run("default lease", func(t *testing.T) {
		te.store.EXPECT().AllocateAddress(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, in store.AllocateAddressInput) (*schema.IPAllocation, error) {
				require.NotNil(t, in.ExpiresAt)
				assert.Equal(t, te.now.Add(time.Hour), *in.ExpiresAt)
				return &schema.IPAllocation{ID: 1, IPAddress: "10.0.0.1"}, nil
			})
		te.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(nil)

		_, err := te.engine.AllocateIP(ctx, 1, "aa-bb-cc-dd-ee-ff", "bob", ipam.AllocateOptions{})
		require.NoError(t, err)
	})

	t.Run("explicit lease wins", func(t *testing.T) {
		te.store.EXPECT().AllocateAddress(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, in store.AllocateAddressInput) (*schema.IPAllocation, error) {
				require.NotNil(t, in.ExpiresAt)
				assert.Equal(t, te.now.Add(10*time.Minute), *in.ExpiresAt)
				return &schema.IPAllocation{ID: 2, IPAddress: "10.0.0.2"}, nil
			})
		te.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(nil)

		_, err := te.engine.AllocateIP(ctx, 1, "aa-bb-cc-dd-ee-ff", "bob", ipam.AllocateOptions{LeaseDuration: 10 * time.Minute})
		require.NoError(t, err)
	})
}

func TestEngine_AllocateIP_Validation(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	_, err := te.engine.AllocateIP(ctx, 1, "not-a-mac", "alice", ipam.AllocateOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidMACAddress)

	_, err = te.engine.AllocateIP(ctx, 1, "AA:BB:CC:DD:EE:FF:00", "alice", ipam.AllocateOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidMACAddress)

	_, err = te.engine.AllocateIP(ctx, 1, "AA:BB:CC:DD:EE:FF", "", ipam.AllocateOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)
}

func TestEngine_AllocateIP_Errors(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().AllocateAddress(ctx, gomock.Any()).Return(nil, &domain.NoCapacityError{SubnetID: 4})
	_, err := te.engine.AllocateIP(ctx, 4, "AA:BB:CC:DD:EE:FF", "alice", ipam.AllocateOptions{})
	assert.ErrorIs(t, err, domain.ErrNoCapacity)
	assert.EqualError(t, err, "no addresses available in subnet 4")

	te.store.EXPECT().AllocateAddress(ctx, gomock.Any()).
		Return(nil, domain.NewInfrastructureError("allocate address", errors.New("connection reset")))
	_, err = te.engine.AllocateIP(ctx, 4, "AA:BB:CC:DD:EE:FF", "alice", ipam.AllocateOptions{})
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
	assert.NotErrorIs(t, err, domain.ErrNoCapacity)
}

func TestEngine_AllocateIP_PublishFailureIsIgnored(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().AllocateAddress(ctx, gomock.Any()).Return(&schema.IPAllocation{ID: 5, IPAddress: "10.0.0.9"}, nil)
	te.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(errors.New("nats down"))

	a, err := te.engine.AllocateIP(ctx, 1, "AA:BB:CC:DD:EE:FF", "alice", ipam.AllocateOptions{})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), a.ID)
}

func TestEngine_ReleaseIP(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().ReleaseAllocation(ctx, uint64(7)).Return(&schema.IPAllocation{ID: 7, IPAddress: "10.0.0.7"}, nil)
	te.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			assert.Equal(t, domain.EventAllocationReleased, e.Type)
			return nil
		})

	ok, err := te.engine.ReleaseIP(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	te.store.EXPECT().ReleaseAllocation(ctx, uint64(7)).Return(nil, domain.ErrAlreadyReleased)
	ok, err = te.engine.ReleaseIP(ctx, 7)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrAlreadyReleased)

	te.store.EXPECT().ReleaseAllocation(ctx, uint64(99)).Return(nil, domain.ErrAllocationNotFound)
	ok, err = te.engine.ReleaseIP(ctx, 99)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrAllocationNotFound)
}

func TestEngine_GetAvailableIPs(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().GetSubnet(ctx, uint64(1)).Return(&schema.IPSubnet{ID: 1, Network: "192.168.1.0", PrefixLength: 29}, nil)
	te.store.EXPECT().GetAllocatedAddresses(ctx, uint64(1)).Return([]string{"192.168.1.1", "192.168.1.4"}, nil)

	ips, err := te.engine.GetAvailableIPs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"192.168.1.2", "192.168.1.3", "192.168.1.5", "192.168.1.6"}, ips)

	te.store.EXPECT().GetSubnet(ctx, uint64(2)).Return(nil, nil)
	ips, err = te.engine.GetAvailableIPs(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, ips)
	assert.Empty(t, ips)
}

func TestEngine_GetAvailableIPs_RefusesOversizedSubnet(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	// a /8 predating the prefix bound is never walked; no allocated-address lookup either
	te.store.EXPECT().GetSubnet(ctx, uint64(3)).Return(&schema.IPSubnet{ID: 3, Network: "10.0.0.0", PrefixLength: 8}, nil)
	_, err := te.engine.GetAvailableIPs(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	te.store.EXPECT().GetSubnet(ctx, uint64(4)).Return(&schema.IPSubnet{ID: 4, Network: "10.1.0.0", PrefixLength: domain.MinSubnetPrefix}, nil)
	te.store.EXPECT().GetAllocatedAddresses(ctx, uint64(4)).Return([]string{"10.1.0.1"}, nil)
	ips, err := te.engine.GetAvailableIPs(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, ips, 65533)
	assert.Equal(t, "10.1.0.2", ips[0])
	assert.Equal(t, "10.1.255.254", ips[len(ips)-1])
}

func TestEngine_GetPoolUtilization(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().GetPool(ctx, uint64(1)).Return(&schema.IPPool{ID: 1}, nil)
	te.store.EXPECT().GetSubnetAllocationCounts(ctx, uint64(1)).Return([]store.SubnetAllocationCount{
		{SubnetID: 1, PrefixLength: 24, Allocated: 10},
		{SubnetID: 2, PrefixLength: 25, Allocated: 5},
	}, nil)

	u, err := te.engine.GetPoolUtilization(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &ipam.Utilization{PoolID: 1, Total: 380, Allocated: 15, Available: 365, UtilizationPercent: 3.95}, u)

	te.store.EXPECT().GetPool(ctx, uint64(2)).Return(nil, nil)
	_, err = te.engine.GetPoolUtilization(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestEngine_CleanupAndExpire(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().CleanupExpiredAllocations(ctx, te.now.AddDate(0, 0, -30)).
		Return(&store.CleanupResult{ExpiredCount: 3, HistoryCount: 8}, nil)
	res, err := te.engine.CleanupExpiredAllocations(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ExpiredCount)
	assert.Equal(t, int64(8), res.HistoryCount)

	te.store.EXPECT().ExpireLeases(ctx, te.now).Return(int64(2), nil)
	n, err := te.engine.ExpireLeases(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEngine_CreateSubnetValidation(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()
	vlan := 5000
	gw := "10.9.9.1"

	tests := []struct {
		name  string
		input store.CreateSubnetInput
	}{
		{"prefix too short", store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 7}},
		{"prefix wider than a /16", store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 15}},
		{"prefix zero", store.CreateSubnetInput{PoolID: 1, Network: "0.0.0.0", PrefixLength: 0}},
		{"prefix too long", store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 33}},
		{"ipv6", store.CreateSubnetInput{PoolID: 1, Network: "2001:db8::", PrefixLength: 24}},
		{"bad vlan", store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 24, VLANID: &vlan}},
		{"gateway outside", store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 24, Gateway: &gw}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := te.engine.CreateSubnet(ctx, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidRange)
		})
	}

	te.store.EXPECT().CreateSubnet(ctx, gomock.Any()).Return(nil, domain.ErrSubnetOverlap)
	_, err := te.engine.CreateSubnet(ctx, store.CreateSubnetInput{PoolID: 1, Network: "10.0.0.0", PrefixLength: 24})
	assert.ErrorIs(t, err, domain.ErrSubnetOverlap)
}

func TestEngine_CreatePoolValidation(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	_, err := te.engine.CreatePool(ctx, store.CreatePoolInput{Name: "p", StartIP: "10.0.0.10", EndIP: "10.0.0.1"})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = te.engine.CreatePool(ctx, store.CreatePoolInput{Name: " ", StartIP: "10.0.0.1", EndIP: "10.0.0.10"})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = te.engine.CreatePool(ctx, store.CreatePoolInput{
		Name: "p", StartIP: "10.0.0.1", EndIP: "10.0.0.10", DNSServers: []string{"8.8.8.8", "dns.example"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	te.store.EXPECT().CreatePool(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in store.CreatePoolInput) (*schema.IPPool, error) {
			assert.Equal(t, "residential", in.Name)
			return &schema.IPPool{ID: 4, Name: in.Name}, nil
		})
	p, err := te.engine.CreatePool(ctx, store.CreatePoolInput{Name: " residential ", StartIP: "10.0.0.1", EndIP: "10.0.0.254"})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), p.ID)
}

func TestEngine_GetMissingResources(t *testing.T) {
	te := setupTestEngine(t, ipam.Config{})
	ctx := context.Background()

	te.store.EXPECT().GetPool(ctx, uint64(8)).Return(nil, nil)
	_, err := te.engine.GetPool(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrPoolNotFound)

	te.store.EXPECT().GetSubnet(ctx, uint64(8)).Return(nil, nil)
	_, err = te.engine.GetSubnet(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrSubnetNotFound)
}
