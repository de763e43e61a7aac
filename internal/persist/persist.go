// Package persist is the key-value collaborator the habit log writes through
// to. Values are opaque blobs; the log serializes habits and entries as two
// independent keys so a partial failure never mixes the two.
package persist

import "errors"

// Keys used by the habit log.
const (
	KeyHabits = "habits"
	KeyLogs   = "logs"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("persist: key not found")

// KV is a minimal key-value store.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}
