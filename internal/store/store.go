package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/HUSC-F-2025/housing-service/internal/models"
)

// Document is the full on-disk shape: one JSON object holding every
// collection plus its id counter. Collections added after the first
// deployments may be absent from older files; nil slices behave as empty
// and EnsureDefaults backfills their counters.
type Document struct {
	Users           []*models.User           `json:"users"`
	Applications    []*models.Application    `json:"applications"`
	Complaints      []*models.Complaint      `json:"complaints,omitempty"`
	Notifications   []*models.Notification   `json:"notifications,omitempty"`
	Fees            []*models.Fee            `json:"fees,omitempty"`
	FeePayments     []*models.FeePayment     `json:"fee_payments,omitempty"`
	RoomAssignments []*models.RoomAssignment `json:"room_assignments,omitempty"`

	NextUserID           uint `json:"next_user_id"`
	NextApplicationID    uint `json:"next_application_id"`
	NextComplaintID      uint `json:"next_complaint_id,omitempty"`
	NextNotificationID   uint `json:"next_notification_id,omitempty"`
	NextFeeID            uint `json:"next_fee_id,omitempty"`
	NextFeePaymentID     uint `json:"next_fee_payment_id,omitempty"`
	NextRoomAssignmentID uint `json:"next_room_assignment_id,omitempty"`
}

// EnsureDefaults backfills counters for collections the on-disk shape
// predates. Counters start at 1.
func (d *Document) EnsureDefaults() {
	for _, c := range []*uint{
		&d.NextUserID, &d.NextApplicationID, &d.NextComplaintID,
		&d.NextNotificationID, &d.NextFeeID, &d.NextFeePaymentID,
		&d.NextRoomAssignmentID,
	} {
		if *c == 0 {
			*c = 1
		}
	}
}

// Store is the single process-wide mutable state object. It is lazily
// loaded from disk on first access and fully rewritten on every mutation.
//
// Durability boundary: Save overwrites the file in place with no
// write-to-temp-then-rename and no cross-process locking. A crash mid-write
// can corrupt the file and two processes racing on Save lose one writer's
// update, last-write-wins at file granularity. The process-local mutex only
// serializes read-modify-save sequences within this process.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	doc    *Document
	loaded bool
}

func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// View runs fn against the current document without persisting. fn must not
// retain references to document slices past its return.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	return fn(s.doc)
}

// Update runs fn against the current document and, if fn succeeds, rewrites
// the whole file. Every mutating repository call goes through here, so
// readers always see the latest saved state.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if err := fn(s.doc); err != nil {
		return err
	}
	return s.save()
}

func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	s.doc = doc
	s.loaded = true
	return nil
}

// load reads the backing file. A missing file yields a fresh empty document.
// A malformed file also resets to empty state; that is logged as a warning
// rather than failing the process.
func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("store file absent, starting with empty state", "path", s.path)
			return emptyDocument(), nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("store file is malformed, resetting to empty state",
			"path", s.path,
			"error", err)
		return emptyDocument(), nil
	}

	doc.EnsureDefaults()
	return &doc, nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

func emptyDocument() *Document {
	doc := &Document{}
	doc.EnsureDefaults()
	return doc
}
