package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/moxibot/moxi-yt-bot/store"
	"github.com/moxibot/moxi-yt-bot/types"
)

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []int
	err     error
}

func (d *fakeDeleter) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, params.MessageID)
	return d.err == nil, d.err
}

func (d *fakeDeleter) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.deleted)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestScheduleDeletesAfterDelay(t *testing.T) {
	deleter := &fakeDeleter{}
	cleanups := store.NewMemoryCleanupStore()
	s := NewScheduler(cleanups, deleter)
	s.Start()
	defer s.Stop()

	s.Schedule(100, 7, 20*time.Millisecond)

	waitFor(t, time.Second, func() bool { return deleter.count() == 1 })

	tasks, _ := cleanups.ListCleanups()
	if len(tasks) != 0 {
		t.Errorf("executed task should be removed from the store, %d left", len(tasks))
	}
}

func TestRecoverOverdueTask(t *testing.T) {
	deleter := &fakeDeleter{}
	cleanups := store.NewMemoryCleanupStore()
	_ = cleanups.PutCleanup(types.CleanupTask{
		ID:        "overdue",
		ChatID:    100,
		MessageID: 7,
		DeleteAt:  time.Now().UTC().Add(-time.Hour),
	})

	s := NewScheduler(cleanups, deleter)
	s.Start()
	defer s.Stop()

	waitFor(t, time.Second, func() bool { return deleter.count() == 1 })
}

func TestStopKeepsPendingTasksPersisted(t *testing.T) {
	deleter := &fakeDeleter{}
	cleanups := store.NewMemoryCleanupStore()
	s := NewScheduler(cleanups, deleter)
	s.Start()

	s.Schedule(100, 7, time.Hour)
	s.Stop()

	if deleter.count() != 0 {
		t.Error("far-future deletion must not run on Stop")
	}
	tasks, _ := cleanups.ListCleanups()
	if len(tasks) != 1 {
		t.Errorf("pending task should stay persisted for recovery, got %d", len(tasks))
	}
}

func TestDeletionFailureIsSwallowed(t *testing.T) {
	deleter := &fakeDeleter{err: errors.New("message not found")}
	cleanups := store.NewMemoryCleanupStore()
	s := NewScheduler(cleanups, deleter)
	s.Start()
	defer s.Stop()

	s.Schedule(100, 7, 10*time.Millisecond)

	waitFor(t, time.Second, func() bool { return deleter.count() == 1 })
}
