package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/mocks"
)

func testConfig() Config {
	return Config{
		URL:            "nats://localhost:4222",
		StreamName:     "IPAM_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "ipam-test",
	}
}

func TestNewPublisher_EnsuresStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cfg natsjs.StreamConfig) error {
			assert.Equal(t, "IPAM_EVENTS", cfg.Name)
			assert.Equal(t, []string{"ipam.>"}, cfg.Subjects)
			return nil
		})

	pub, err := NewPublisher(context.Background(), testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)
	require.NotNil(t, pub)
}

func TestNewPublisher_StreamFailureClosesConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(errors.New("no responders"))
	nc.EXPECT().Close()

	pub, err := NewPublisher(context.Background(), testConfig(), natsJS, adapter.NewJSON())
	assert.Error(t, err)
	assert.Nil(t, pub)
}

func TestNewPublisher_ConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("connection refused"))

	_, err := NewPublisher(context.Background(), testConfig(), natsJS, adapter.NewJSON())
	assert.ErrorContains(t, err, "failed to connect to NATS")
}

func TestPublisher_PublishEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	p := &publisher{js: js, streamName: "IPAM_EVENTS", json: adapter.NewJSON()}

	event := domain.NewAllocationEvent(domain.EventAllocationAllocated, time.Now(), domain.AllocationEvent{
		AllocationID: 9,
		SubnetID:     2,
		IPAddress:    "10.0.0.1",
		MACAddress:   "aa:bb:cc:dd:ee:ff",
		Username:     "alice",
	})

	js.EXPECT().Publish(gomock.Any(), "ipam.allocation.allocated", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var got domain.Event
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, event.ID, got.ID)
			require.NotNil(t, got.Allocation)
			assert.Equal(t, "alice", got.Allocation.Username)
			assert.Nil(t, got.Migration)
			return &natsjs.PubAck{Stream: "IPAM_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, p.PublishEvent(context.Background(), event))
}

func TestPublisher_PublishEventError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	p := &publisher{js: js, streamName: "IPAM_EVENTS", json: adapter.NewJSON()}

	js.EXPECT().Publish(gomock.Any(), "ipam.migration.completed", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))

	event := domain.NewMigrationEvent(domain.EventMigrationCompleted, time.Now(), domain.MigrationEvent{RunID: "r1"})
	err := p.PublishEvent(context.Background(), event)
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestPublisher_CloseDrains(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nc := mocks.NewMockNatsConn(ctrl)
	nc.EXPECT().Drain().Return(nil)

	p := &publisher{nc: nc}
	p.Close()
}

func TestNewPublisherOrNoop(t *testing.T) {
	t.Run("empty url skips nats", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// no Connect expectation: dialing would fail the test
		natsJS := mocks.NewMockNatsJetStream(ctrl)

		pub, err := NewPublisherOrNoop(context.Background(), Config{}, natsJS, adapter.NewJSON())
		require.NoError(t, err)
		assert.NoError(t, pub.PublishEvent(context.Background(), &domain.Event{}))
		pub.Close()
	})

	t.Run("configured url connects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		natsJS := mocks.NewMockNatsJetStream(ctrl)
		nc := mocks.NewMockNatsConn(ctrl)
		js := mocks.NewMockJetStream(ctrl)
		natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nc, js, nil)
		js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(nil)

		pub, err := NewPublisherOrNoop(context.Background(), testConfig(), natsJS, adapter.NewJSON())
		require.NoError(t, err)
		_, ok := pub.(*publisher)
		assert.True(t, ok)
	})
}
