// Package views derives the filtered record subsets the dashboard and the
// report search render. Everything here is a pure function over an explicit
// record slice plus filter parameters: no hidden state, re-derivable on
// every call.
package views

import (
	"strings"
	"time"

	"hv_maint/internal/models"
)

// ByStatusAndMunicipality keeps records matching the status tab, narrowed by
// municipality when a filter is set (empty id = pass-through).
func ByStatusAndMunicipality(records []models.MaintenanceRecord, status models.MaintenanceStatus, municipalityID string) []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if r.Status != status {
			continue
		}
		if municipalityID != "" && r.MunicipalityID != municipalityID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TabCounts counts pending and completed over the full collection. The tab
// labels always show global counts, never narrowed by the active
// municipality filter.
func TabCounts(records []models.MaintenanceRecord) (pending, completed int) {
	for _, r := range records {
		switch r.Status {
		case models.StatusPending:
			pending++
		case models.StatusCompleted:
			completed++
		}
	}
	return pending, completed
}

// Grouped is the municipality drill-down view: a strict partition by status.
type Grouped struct {
	Pending   []models.MaintenanceRecord `json:"pending"`
	Completed []models.MaintenanceRecord `json:"completed"`
}

// ByMunicipalityGrouped partitions a municipality's records by status.
func ByMunicipalityGrouped(records []models.MaintenanceRecord, municipalityID string) Grouped {
	g := Grouped{
		Pending:   []models.MaintenanceRecord{},
		Completed: []models.MaintenanceRecord{},
	}
	for _, r := range records {
		if r.MunicipalityID != municipalityID {
			continue
		}
		if r.Status == models.StatusCompleted {
			g.Completed = append(g.Completed, r)
		} else {
			g.Pending = append(g.Pending, r)
		}
	}
	return g
}

// Criteria is the report search filter. All supplied criteria combine with
// logical AND; empty fields are ignored.
type Criteria struct {
	SearchText     string `form:"search_text"`
	MunicipalityID string `form:"municipality_id"`
	ServiceType    string `form:"service_type"`
	DateStart      string `form:"date_start"`
	DateEnd        string `form:"date_end"`
}

// ByReportCriteria selects the records a report export covers.
// SearchText is a case-insensitive substring match against technician, title
// and description (a hit on any field qualifies); municipality and service
// type are exact; the date bounds form an inclusive range, each side
// independently optional.
func ByReportCriteria(records []models.MaintenanceRecord, c Criteria) []models.MaintenanceRecord {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))
	start, hasStart := parseDate(c.DateStart)
	end, hasEnd := parseDate(c.DateEnd)

	out := make([]models.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesText(r, search) {
			continue
		}
		if c.MunicipalityID != "" && r.MunicipalityID != c.MunicipalityID {
			continue
		}
		if c.ServiceType != "" && r.Title != c.ServiceType {
			continue
		}
		if hasStart || hasEnd {
			recDate, ok := parseDate(r.Date)
			if !ok {
				continue
			}
			if hasStart && recDate.Before(start) {
				continue
			}
			if hasEnd && recDate.After(end) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func matchesText(r models.MaintenanceRecord, search string) bool {
	return strings.Contains(strings.ToLower(r.Technician), search) ||
		strings.Contains(strings.ToLower(r.Title), search) ||
		strings.Contains(strings.ToLower(r.Description), search)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
