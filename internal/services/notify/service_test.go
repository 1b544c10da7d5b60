package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnarayan/folio/internal/common"
)

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

func TestAddAndDismiss(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	id := svc.Success("portfolio created")
	require.NotEmpty(t, id)
	require.Len(t, svc.Active(), 1)

	svc.Dismiss(id)
	assert.Empty(t, svc.Active())

	// Dismissing again is a no-op.
	svc.Dismiss(id)
}

func TestAutoDismiss(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	svc.Add("transient", LevelInfo, 20*time.Millisecond)
	require.Len(t, svc.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(svc.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNegativeDurationDisablesAutoDismiss(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	svc.Add("sticky", LevelWarning, -1)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, svc.Active(), 1)
}

func TestSubscribeReceivesAddAndDismiss(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	events := svc.Subscribe()
	id := svc.Error("backend down")

	ev := <-events
	assert.True(t, ev.Added)
	assert.Equal(t, LevelError, ev.Notification.Level)
	assert.Equal(t, "backend down", ev.Notification.Message)

	svc.Dismiss(id)
	ev = <-events
	assert.False(t, ev.Added)
	assert.Equal(t, id, ev.Notification.ID)
}

func TestCloseStopsEverything(t *testing.T) {
	svc := newTestService()
	events := svc.Subscribe()

	svc.Add("sticky", LevelInfo, -1)
	<-events

	svc.Close()

	_, open := <-events
	assert.False(t, open)
	assert.Empty(t, svc.Active())

	// Adding after close is rejected.
	assert.Empty(t, svc.Add("late", LevelInfo, 0))

	// Closing twice is harmless.
	svc.Close()
}
