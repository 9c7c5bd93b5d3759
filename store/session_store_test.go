package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/moxibot/moxi-yt-bot/types"
)

func TestSetModeWithoutSession(t *testing.T) {
	s := NewMemorySessionStore()

	_, err := s.SetMode(42, types.ModeVideo)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("SetMode on empty store: got %v, want ErrNoSession", err)
	}
	if _, err := s.Get(42); !errors.Is(err, ErrNoSession) {
		t.Errorf("failed SetMode must not create a session, Get returned %v", err)
	}
}

func TestSetQualityWithoutSession(t *testing.T) {
	s := NewMemorySessionStore()

	_, err := s.SetQuality(42, "720")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("SetQuality on empty store: got %v, want ErrNoSession", err)
	}
	if _, err := s.Get(42); !errors.Is(err, ErrNoSession) {
		t.Errorf("failed SetQuality must not create a session, Get returned %v", err)
	}
}

func TestSetQualityBeforeMode(t *testing.T) {
	s := NewMemorySessionStore()
	if _, err := s.Begin(42, 100, "https://youtu.be/abc123"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	_, err := s.SetQuality(42, "720")
	if !errors.Is(err, ErrModeNotChosen) {
		t.Fatalf("SetQuality before SetMode: got %v, want ErrModeNotChosen", err)
	}
}

func TestFullSelectionFlow(t *testing.T) {
	s := NewMemorySessionStore()

	if _, err := s.Begin(42, 100, "https://youtu.be/abc123"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := s.SetMode(42, types.ModeVideo); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if _, err := s.SetTitle(42, "some title"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	session, err := s.SetQuality(42, "720")
	if err != nil {
		t.Fatalf("SetQuality: %v", err)
	}
	if session.URL != "https://youtu.be/abc123" || session.Mode != types.ModeVideo || session.Quality != "720" || session.Title != "some title" {
		t.Errorf("unexpected session: %+v", session)
	}

	s.Delete(42)
	if _, err := s.Get(42); !errors.Is(err, ErrNoSession) {
		t.Errorf("Get after Delete: got %v, want ErrNoSession", err)
	}
}

func TestBeginReplacesPreviousSelection(t *testing.T) {
	s := NewMemorySessionStore()

	_, _ = s.Begin(42, 100, "https://youtu.be/first")
	_, _ = s.SetMode(42, types.ModeAudio)

	session, err := s.Begin(42, 100, "https://youtu.be/second")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if session.URL != "https://youtu.be/second" || session.Mode != "" || session.Quality != "" {
		t.Errorf("Begin must reset the selection, got %+v", session)
	}
}

func TestReturnedSessionIsACopy(t *testing.T) {
	s := NewMemorySessionStore()

	first, _ := s.Begin(42, 100, "https://youtu.be/abc123")
	first.Mode = types.ModeAudio

	stored, err := s.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Mode != "" {
		t.Errorf("mutating a returned session leaked into the store: %+v", stored)
	}
}

func TestConcurrentSameUserUpdates(t *testing.T) {
	s := NewMemorySessionStore()
	_, _ = s.Begin(42, 100, "https://youtu.be/abc123")
	_, _ = s.SetMode(42, types.ModeVideo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.SetQuality(42, "720")
			_, _ = s.Get(42)
		}()
	}
	wg.Wait()

	session, err := s.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session.Quality != "720" {
		t.Errorf("quality after concurrent updates: %q", session.Quality)
	}
}
