// Package recorder persists routing decisions for logging and analytics.
// Recording is fire-and-forget: a sink failure must never block the chat
// response that the decision was computed for.
package recorder

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stratai-labs/autoroute/pkg/engine"
)

// Record wraps a routing decision with identifying metadata.
type Record struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversation_id,omitempty"`
	Turn           int              `json:"turn"`
	RecordedAt     time.Time        `json:"recorded_at"`
	Decision       *engine.Decision `json:"decision"`
}

// NewRecord builds a record for a routed turn.
func NewRecord(conversationID string, turn int, decision *engine.Decision) Record {
	return Record{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Turn:           turn,
		RecordedAt:     time.Now().UTC(),
		Decision:       decision,
	}
}

// Sink receives routing decision records.
type Sink interface {
	Record(rec Record) error
}

// Emit sends the record to the sink, swallowing any failure. Errors are
// logged and never propagate to the caller dispatching the model call.
func Emit(sink Sink, rec Record) {
	if sink == nil {
		return
	}
	if err := sink.Record(rec); err != nil {
		log.Printf("[recorder] failed to record decision %s: %v", rec.ID, err)
	}
}

// Store writes decision records as JSON files sharded by content hash.
type Store struct {
	BasePath string
}

// NewStore creates a decision store rooted at basePath.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		basePath = filepath.Join(home, ".autoroute", "decisions")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}

	return &Store{BasePath: basePath}, nil
}

// Record writes the record under a content-hash-sharded path.
func (s *Store) Record(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	hashBytes := sha256.Sum256(data)
	hash := hex.EncodeToString(hashBytes[:])

	// Shard by first 2 chars
	dir := filepath.Join(s.BasePath, hash[:2])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.json", rec.ID))
	return os.WriteFile(path, data, 0644)
}
