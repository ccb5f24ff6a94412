// Package repository owns the authoritative in-memory record collection.
// Durable storage is out of scope; the repository is constructed once per
// process and injected into the layers that need it.
package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hv_maint/internal/models"
)

// Repository guards the record collection. Records are kept most-recent-first:
// Create prepends, and List preserves that order.
type Repository struct {
	mu      sync.RWMutex
	records []models.MaintenanceRecord
}

// New builds a repository, optionally preloaded with seed records
// (seed order is preserved as-is).
func New(seed ...models.MaintenanceRecord) *Repository {
	repo := &Repository{}
	for _, rec := range seed {
		rec.Stages = normalizeStages(rec.Stages)
		repo.records = append(repo.records, rec)
	}
	return repo
}

// snapshot detaches a record from repository internals before it is handed
// out. Stages share a backing array with the stored record otherwise, and a
// slot mutation under the lock would race with a handler still reading an
// earlier return value.
func snapshot(rec models.MaintenanceRecord) models.MaintenanceRecord {
	rec.Stages = rec.CopyStages()
	return rec
}

// normalizeStages deep-copies an incoming stage sequence and enforces
// unique, non-empty stage ids within the record: empty ids get a fresh uuid,
// a duplicate id gets reassigned so every stage stays addressable.
func normalizeStages(stages []models.MaintenanceStage) []models.MaintenanceStage {
	if stages == nil {
		return nil
	}
	out := make([]models.MaintenanceStage, len(stages))
	seen := make(map[string]bool, len(stages))
	for i, s := range stages {
		c := s.Copy()
		if c.ID == "" || seen[c.ID] {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = true
		out[i] = c
	}
	return out
}

// CreateInput carries the caller-supplied fields for a new record.
// Zero values fall back to documented defaults.
type CreateInput struct {
	MunicipalityID string
	Title          string
	Nature         string
	Description    string
	Date           string
	Status         models.MaintenanceStatus
	Stages         []models.MaintenanceStage
	Technician     string
	IsLegacy       bool
	LegacyFileName string
}

// Create assigns a fresh id, fills defaults and prepends the record
// (most-recent-first is an explicit product decision).
func (r *Repository) Create(input CreateInput) models.MaintenanceRecord {
	rec := models.MaintenanceRecord{
		ID:             uuid.NewString(),
		MunicipalityID: input.MunicipalityID,
		Title:          input.Title,
		Nature:         input.Nature,
		Description:    input.Description,
		Date:           input.Date,
		Status:         input.Status,
		Stages:         input.Stages,
		Technician:     input.Technician,
		IsLegacy:       input.IsLegacy,
		LegacyFileName: input.LegacyFileName,
		CreatedAt:      time.Now(),
	}
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	if rec.Date == "" {
		rec.Date = time.Now().Format(models.DateLayout)
	}
	if rec.Stages == nil {
		rec.Stages = models.DefaultStages()
	} else {
		rec.Stages = normalizeStages(rec.Stages)
	}
	if rec.Technician == "" {
		rec.Technician = models.DefaultTechnician
	}

	r.mu.Lock()
	r.records = append([]models.MaintenanceRecord{rec}, r.records...)
	r.mu.Unlock()

	logrus.WithField("record_id", rec.ID).Info("maintenance record created")
	return snapshot(rec)
}

// UpdateInput is a partial patch: nil fields are left untouched.
// ID and CreatedAt are not patchable.
type UpdateInput struct {
	MunicipalityID *string
	Title          *string
	Nature         *string
	Description    *string
	Date           *string
	Status         *models.MaintenanceStatus
	Stages         *[]models.MaintenanceStage
	Technician     *string
	AINotes        *string
}

// Update merges the patch over the existing record.
func (r *Repository) Update(id string, patch UpdateInput) (models.MaintenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}

	rec := &r.records[idx]
	if patch.MunicipalityID != nil {
		rec.MunicipalityID = *patch.MunicipalityID
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Nature != nil {
		rec.Nature = *patch.Nature
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Date != nil {
		rec.Date = *patch.Date
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Stages != nil {
		rec.Stages = normalizeStages(*patch.Stages)
	}
	if patch.Technician != nil {
		rec.Technician = *patch.Technician
	}
	if patch.AINotes != nil {
		rec.AINotes = *patch.AINotes
	}
	return snapshot(*rec), nil
}

// Remove deletes a record. Stages and images go with it by value semantics;
// nothing can keep referencing a deleted record. Closing an open edit session
// for the record is the caller's contract, not the repository's.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.ErrNotFound
	}
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	logrus.WithField("record_id", id).Info("maintenance record removed")
	return nil
}

// Clone duplicates a record under a fresh id: status reset to PENDING, date
// reset to today, title marked as a copy, stages deep-copied.
func (r *Repository) Clone(id string) (models.MaintenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}

	src := r.records[idx]
	dup := src
	dup.ID = uuid.NewString()
	dup.Status = models.StatusPending
	dup.Title = src.Title + " (Cópia)"
	dup.Date = time.Now().Format(models.DateLayout)
	dup.CreatedAt = time.Now()
	dup.Stages = src.CopyStages()

	r.records = append([]models.MaintenanceRecord{dup}, r.records...)
	return snapshot(dup), nil
}

// Get returns the record with the given id.
func (r *Repository) Get(id string) (models.MaintenanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}
	return snapshot(r.records[idx]), nil
}

// List returns records matching the predicate in repository order.
// A nil predicate returns everything.
func (r *Repository) List(pred func(models.MaintenanceRecord) bool) []models.MaintenanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.MaintenanceRecord, 0, len(r.records))
	for _, rec := range r.records {
		if pred == nil || pred(rec) {
			out = append(out, snapshot(rec))
		}
	}
	return out
}

// SetStageImage assigns an image to one evidence slot of one stage.
// Slot assignment is the only mutation allowed below whole-stage replacement.
func (r *Repository) SetStageImage(recordID, stageID string, slot models.SlotKind, img models.MaintenanceImage) (models.MaintenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(recordID)
	if idx < 0 {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}
	stage := r.records[idx].Stage(stageID)
	if stage == nil {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	stage.SetSlot(slot, img)
	return snapshot(r.records[idx]), nil
}

// ClearStageImage empties one evidence slot, destroying the image it held.
func (r *Repository) ClearStageImage(recordID, stageID string, slot models.SlotKind) (models.MaintenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(recordID)
	if idx < 0 {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}
	stage := r.records[idx].Stage(stageID)
	if stage == nil {
		return models.MaintenanceRecord{}, models.ErrNotFound
	}
	stage.ClearSlot(slot)
	return snapshot(r.records[idx]), nil
}

// AppendAINote stores an AI result on a record. Async completion handlers call
// this after the remote round-trip; a record deleted in the meantime yields
// ErrNotFound and the note is dropped, never applied elsewhere.
func (r *Repository) AppendAINote(recordID, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(recordID)
	if idx < 0 {
		return models.ErrNotFound
	}
	rec := &r.records[idx]
	if rec.AINotes == "" {
		rec.AINotes = note
	} else {
		rec.AINotes = rec.AINotes + "\n\n" + note
	}
	return nil
}

// indexOf must be called with the mutex held.
func (r *Repository) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}
