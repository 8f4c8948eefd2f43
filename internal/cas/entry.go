package cas

// Entry records everything the index tracks about one stored blob.
type Entry struct {
	Hash         string `json:"hash"`
	Size         int64  `json:"size"`
	StoredAt     int64  `json:"stored_at"`
	LastAccessed int64  `json:"last_accessed"`
}
