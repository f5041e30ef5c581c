// Package session wraps the fiber session store. Session payloads are JSON
// blobs keyed by a random hex id that doubles as the cookie value.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// sessionIDBytes is the raw entropy per session id (hex doubles the length).
const sessionIDBytes = 32

// Store is the process-wide session store, set once by Init.
var Store *session.Store

// Data is the payload persisted per session.
type Data struct {
	User models.User
}

// Write persists the session payload under the given id with an expiry.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read loads the session payload for the given id.
func (s *Data) Read(sessionID string) error {
	raw, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, s)
}

// Init sets up the session store on the given storage backend.
func Init(backend storage.Storage) {
	if backend == nil {
		panic("session storage cannot be nil")
	}

	Store = session.New(session.Config{Storage: backend})
}

// GenerateSessionID returns a new 256-bit random session id in hex.
func GenerateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
