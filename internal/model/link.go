package model

// LinkRecord is one line of the JSONL file store: a lookup key and the
// destination URL stored under it, or a tombstone.
type LinkRecord struct {
	Key     string `json:"key"`
	URL     string `json:"url,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}
