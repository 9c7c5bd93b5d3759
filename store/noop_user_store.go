package store

// NoopUserStore stands in when no persistence is configured. The bot keeps
// working, it just records nothing.
type NoopUserStore struct{}

func (NoopUserStore) UpsertUser(userID int64, username string) error { return nil }

func (NoopUserStore) ListIDs() ([]int64, error) { return nil, nil }

func (NoopUserStore) Count() (int64, error) { return 0, nil }
