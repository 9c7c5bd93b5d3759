package types

import "time"

type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

type Session struct {
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	URL       string    `json:"url"`
	Mode      Mode      `json:"mode,omitempty"`
	Quality   string    `json:"quality,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CleanupTask is a pending deletion of an uploaded chat message.
type CleanupTask struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chat_id"`
	MessageID int       `json:"message_id"`
	DeleteAt  time.Time `json:"delete_at"`
}

type SessionStore interface {
	Begin(userID, chatID int64, url string) (*Session, error)
	Get(userID int64) (*Session, error)
	SetMode(userID int64, mode Mode) (*Session, error)
	SetTitle(userID int64, title string) (*Session, error)
	SetQuality(userID int64, quality string) (*Session, error)
	Delete(userID int64)
}

type UserStore interface {
	UpsertUser(userID int64, username string) error
	ListIDs() ([]int64, error)
	Count() (int64, error)
}

type CleanupStore interface {
	PutCleanup(task CleanupTask) error
	ListCleanups() ([]CleanupTask, error)
	RemoveCleanup(id string) error
}
