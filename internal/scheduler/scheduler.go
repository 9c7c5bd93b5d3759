package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/google/uuid"
	"github.com/moxibot/moxi-yt-bot/types"
)

// MessageDeleter is the slice of the Telegram client the scheduler needs.
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

// Scheduler runs deferred deletions of uploaded chat messages. Pending
// deletions are persisted through the CleanupStore and recovered on Start,
// so a restart does not silently drop them. Deletion failures are logged
// and swallowed, the cleanup is cosmetic.
type Scheduler struct {
	store   types.CleanupStore
	deleter MessageDeleter

	mu      sync.Mutex
	running bool
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewScheduler(store types.CleanupStore, deleter MessageDeleter) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		store:   store,
		deleter: deleter,
		timers:  make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.recoverPending()
}

func (s *Scheduler) recoverPending() {
	tasks, err := s.store.ListCleanups()
	if err != nil {
		log.Printf("Cleanup recovery: failed to list pending deletions: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	for _, task := range tasks {
		s.arm(task)
	}
	log.Printf("Cleanup recovery: rescheduled %d pending deletions", len(tasks))
}

// Stop cancels the timers. Persisted entries remain in the store and are
// recovered on the next start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	for id, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Schedule registers a deletion of the given chat message after the delay.
func (s *Scheduler) Schedule(chatID int64, messageID int, delay time.Duration) {
	task := types.CleanupTask{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		MessageID: messageID,
		DeleteAt:  time.Now().UTC().Add(delay),
	}
	if err := s.store.PutCleanup(task); err != nil {
		log.Printf("Cleanup: failed to persist deletion of msg %d in chat %d: %v", messageID, chatID, err)
	}
	s.arm(task)
}

func (s *Scheduler) arm(task types.CleanupTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	if _, exists := s.timers[task.ID]; exists {
		return
	}

	delay := time.Until(task.DeleteAt)
	if delay < 0 {
		delay = 0
	}
	s.wg.Add(1)
	s.timers[task.ID] = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.execute(task)
	})
}

func (s *Scheduler) execute(task types.CleanupTask) {
	s.mu.Lock()
	delete(s.timers, task.ID)
	s.mu.Unlock()

	select {
	case <-s.ctx.Done():
		return
	default:
	}

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()
	if _, err := s.deleter.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    task.ChatID,
		MessageID: task.MessageID,
	}); err != nil {
		log.Printf("Cleanup: failed to delete msg %d in chat %d: %v", task.MessageID, task.ChatID, err)
	}
	if err := s.store.RemoveCleanup(task.ID); err != nil {
		log.Printf("Cleanup: failed to remove task %s: %v", task.ID, err)
	}
}
