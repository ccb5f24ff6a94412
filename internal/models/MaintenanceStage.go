// internal/models/maintenance_stage.go
package models

// SlotKind names one of the three fixed evidence positions on a stage.
type SlotKind string

const (
	SlotBefore SlotKind = "before"
	SlotDuring SlotKind = "during"
	SlotAfter  SlotKind = "after"
)

// SlotKinds lists the evidence slots in their fixed display order.
var SlotKinds = []SlotKind{SlotBefore, SlotDuring, SlotAfter}

// ValidSlot reports whether s names a known evidence slot.
func ValidSlot(s SlotKind) bool {
	return s == SlotBefore || s == SlotDuring || s == SlotAfter
}

// MaintenanceStage is a named phase of a maintenance activity with three
// independent, optional evidence slots. Each slot holds zero or one image.
type MaintenanceStage struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Before      *MaintenanceImage `json:"before_image,omitempty"`
	During      *MaintenanceImage `json:"during_image,omitempty"`
	After       *MaintenanceImage `json:"after_image,omitempty"`
}

// Slot returns the image held in the given slot, nil when empty or unknown.
func (s *MaintenanceStage) Slot(kind SlotKind) *MaintenanceImage {
	switch kind {
	case SlotBefore:
		return s.Before
	case SlotDuring:
		return s.During
	case SlotAfter:
		return s.After
	}
	return nil
}

// SetSlot assigns an image to a slot, replacing any previous occupant.
func (s *MaintenanceStage) SetSlot(kind SlotKind, img MaintenanceImage) {
	switch kind {
	case SlotBefore:
		s.Before = &img
	case SlotDuring:
		s.During = &img
	case SlotAfter:
		s.After = &img
	}
}

// ClearSlot removes the image from a slot. The image is owned by the slot,
// so clearing destroys it.
func (s *MaintenanceStage) ClearSlot(kind SlotKind) {
	switch kind {
	case SlotBefore:
		s.Before = nil
	case SlotDuring:
		s.During = nil
	case SlotAfter:
		s.After = nil
	}
}

// EvidenceCount returns the number of occupied slots (0 to 3).
func (s *MaintenanceStage) EvidenceCount() int {
	n := 0
	for _, kind := range SlotKinds {
		if s.Slot(kind) != nil {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of the stage, image payloads included.
func (s MaintenanceStage) Copy() MaintenanceStage {
	out := s
	if s.Before != nil {
		img := *s.Before
		out.Before = &img
	}
	if s.During != nil {
		img := *s.During
		out.During = &img
	}
	if s.After != nil {
		img := *s.After
		out.After = &img
	}
	return out
}
