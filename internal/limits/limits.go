package limits

// Guard enforces the configured ceiling on downloaded file size.
type Guard struct {
	MaxFileSizeMB int
}

func NewGuard(maxFileSizeMB int) Guard {
	return Guard{MaxFileSizeMB: maxFileSizeMB}
}

func (g Guard) WithinLimit(sizeBytes int64) bool {
	return sizeBytes <= int64(g.MaxFileSizeMB)*1024*1024
}
