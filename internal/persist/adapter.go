package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Snapshot keys, one per collection plus the folder tree
const (
	KeyLeads     = "leads"
	KeyProjects  = "projects"
	KeyCampaigns = "campaigns"
	KeyReports   = "reports"
	KeyFolders   = "folders"
)

// Adapter reads and writes named snapshots through a Backend.
// Loads fail soft to a caller supplied fallback; saves overwrite.
type Adapter struct {
	backend Backend
	prefix  string
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewAdapter builds an adapter. A zero timeout means no deadline.
func NewAdapter(backend Backend, prefix string, timeout time.Duration, log logrus.FieldLogger) *Adapter {
	return &Adapter{
		backend: backend,
		prefix:  prefix,
		timeout: timeout,
		log:     log,
	}
}

// Backend exposes the underlying storage, for health checks
func (a *Adapter) Backend() Backend {
	return a.backend
}

func (a *Adapter) opContext() (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *Adapter) storageKey(key string) string {
	return a.prefix + key
}

// Load returns the snapshot stored under key, or fallback when the entry is
// absent, empty, null, unreadable or undecodable. Failures are logged only.
func Load[T any](a *Adapter, key string, fallback T) T {
	ctx, cancel := a.opContext()
	defer cancel()

	entry := a.log.WithField("key", a.storageKey(key))

	raw, err := a.backend.Read(ctx, a.storageKey(key))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			entry.Debug("No stored snapshot, using defaults")
		} else {
			entry.WithError(err).Warn("Failed to read snapshot, using defaults")
		}
		return fallback
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		entry.Debug("Empty snapshot, using defaults")
		return fallback
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		entry.WithError(err).Warn("Failed to decode snapshot, using defaults")
		return fallback
	}

	return value
}

// Save serializes value and overwrites the entry for key
func (a *Adapter) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}

	ctx, cancel := a.opContext()
	defer cancel()

	if err := a.backend.Write(ctx, a.storageKey(key), raw); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"key":   a.storageKey(key),
		"bytes": len(raw),
	}).Debug("Saved snapshot")

	return nil
}
