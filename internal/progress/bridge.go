package progress

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
)

// MessageEditor is the slice of the Telegram client the bridge needs.
type MessageEditor interface {
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
}

// Bridge relays download progress into edits of a status message. Edits are
// dispatched from their own goroutine through a latest-wins channel, so the
// download loop never blocks on Telegram and edit failures are discarded.
type Bridge struct {
	editor    MessageEditor
	chatID    int64
	messageID int

	updates chan int
	done    chan struct{}
	once    sync.Once
}

func NewBridge(editor MessageEditor, chatID int64, messageID int) *Bridge {
	b := &Bridge{
		editor:    editor,
		chatID:    chatID,
		messageID: messageID,
		updates:   make(chan int, 1),
		done:      make(chan struct{}),
	}
	go b.run()
	return b
}

// Notify converts byte counts into a percentage and queues it for dispatch.
// A pending unsent percentage is replaced by the newer one.
func (b *Bridge) Notify(downloaded, total int64) {
	percent := 0
	if total > 0 {
		percent = int(downloaded * 100 / total)
	}
	for {
		select {
		case b.updates <- percent:
			return
		default:
		}
		select {
		case <-b.updates:
		default:
		}
	}
}

// Close stops the dispatcher. Notify must not be called after Close.
func (b *Bridge) Close() {
	b.once.Do(func() {
		close(b.updates)
		<-b.done
	})
}

func (b *Bridge) run() {
	defer close(b.done)
	last := -1
	for percent := range b.updates {
		if percent == last {
			continue
		}
		last = percent

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, _ = b.editor.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    b.chatID,
			MessageID: b.messageID,
			Text:      messages.DownloadProgress(percent),
		})
		cancel()
	}
}
