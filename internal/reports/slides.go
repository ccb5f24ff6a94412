package reports

import (
	"fmt"
	"time"

	"hv_maint/internal/models"
)

// SlideKind discriminates the three slide layouts in a deck.
type SlideKind string

const (
	SlideCover    SlideKind = "cover"
	SlideOverview SlideKind = "overview"
	SlideStage    SlideKind = "stage"
)

// Evidence slot labels in their fixed left-to-right order.
var slotLabels = [3]string{"Antes", "Durante", "Depois"}

// EvidenceSlot is one of the three fixed placeholders on a stage slide.
// Image is nil for an empty slot; the placeholder still renders at its fixed
// position so before/during/after stay visually comparable.
type EvidenceSlot struct {
	Label string
	Image *models.MaintenanceImage
}

// Occupied reports whether the slot carries an image.
func (s EvidenceSlot) Occupied() bool {
	return s.Image != nil
}

// Slide is one rendered slide description. Only the fields for its kind are
// populated.
type Slide struct {
	Kind SlideKind

	// Cover
	Title       string
	Subtitle    string
	RecordCount int

	// Overview
	RecordTitle  string
	Municipality string
	Region       string
	Technician   string
	Date         string
	Nature       string
	Description  string

	// Stage
	StageName string
	StageDesc string
	Slots     [3]EvidenceSlot
}

// Deck is an ordered slide sequence: cover, then per record one overview
// slide followed by exactly one slide per stage.
type Deck struct {
	GeneratedAt time.Time
	Slides      []Slide
}

// BuildDeck lays out the presentation for a record set. A record with zero
// stages emits only its overview slide; a stage with zero occupied slots
// emits three empty placeholders.
func BuildDeck(records []models.MaintenanceRecord, municipalities []models.Municipality, now time.Time) Deck {
	deck := Deck{GeneratedAt: now}

	deck.Slides = append(deck.Slides, Slide{
		Kind:        SlideCover,
		Title:       "Relatório Operacional de Manutenções",
		Subtitle:    fmt.Sprintf("Amazonas - Bacias Hidrográficas • %s", now.Format(models.DateLayout)),
		RecordCount: len(records),
	})

	for _, r := range records {
		munName, munRegion := unresolvedPlaceholder, unresolvedPlaceholder
		if mun, ok := models.FindMunicipality(municipalities, r.MunicipalityID); ok {
			munName = mun.Name
			munRegion = string(mun.Region)
		}

		deck.Slides = append(deck.Slides, Slide{
			Kind:         SlideOverview,
			RecordTitle:  r.Title,
			Municipality: munName,
			Region:       munRegion,
			Technician:   r.Technician,
			Date:         r.Date,
			Nature:       r.Nature,
			Description:  r.Description,
		})

		for _, stage := range r.Stages {
			slide := Slide{
				Kind:      SlideStage,
				StageName: stage.Name,
				StageDesc: stage.Description,
			}
			for i, kind := range models.SlotKinds {
				slide.Slots[i] = EvidenceSlot{
					Label: slotLabels[i],
					Image: stage.Slot(kind),
				}
			}
			deck.Slides = append(deck.Slides, slide)
		}
	}

	return deck
}
