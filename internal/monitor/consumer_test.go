package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/ping-monitor/internal/device"
	portsm "github.com/khmm12/ping-monitor/internal/ports/mocks"
	"github.com/khmm12/ping-monitor/internal/updates"
)

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (s *recordingSink) HandleSnapshot(_ context.Context, _ time.Time, states []device.DeviceState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range states {
		s.events = append(s.events, "snapshot:"+st.Host)
	}
}

func (s *recordingSink) HandleLog(_ context.Context, _ time.Time, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, "log:"+message)
}

func (s *recordingSink) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.events...)
}

func TestConsume_DispatchesInOrderAndFlushesOnCancel(t *testing.T) {
	q := updates.NewQueue()
	now := time.Now()

	q.Publish(updates.NewSnapshot(now, []device.DeviceState{device.NewDeviceState("a")}))
	q.Publish(updates.NewLog(now, "Offline detected: a"))

	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Consume(ctx, q, time.Millisecond, sink)
	}()

	require.Eventually(t, func() bool { return len(sink.recorded()) == 2 }, time.Second, time.Millisecond)

	q.Publish(updates.NewLog(now, "late"))
	cancel()
	<-done

	require.Equal(t, []string{"snapshot:a", "log:Offline detected: a", "log:late"}, sink.recorded())
}

func TestReportingSink_PublishesSnapshot(t *testing.T) {
	publisher := portsm.NewMockDeviceStatePublisher(t)
	sink := NewReportingSink(slog.New(slog.NewTextHandler(io.Discard, nil)), publisher)

	states := []device.DeviceState{device.NewDeviceState("a")}
	publisher.On("Publish", mock.Anything, states).Return(errors.New("registry closed")).Once()

	sink.HandleSnapshot(t.Context(), time.Now(), states)
	sink.HandleLog(t.Context(), time.Now(), "Email alert sent successfully.")
}
