// internal/models/maintenance_record.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaintenanceStatus is a closed two-value set. There is no in-progress state.
type MaintenanceStatus string

const (
	StatusPending   MaintenanceStatus = "PENDING"
	StatusCompleted MaintenanceStatus = "COMPLETED"
)

// ValidStatus reports whether s is one of the two allowed statuses.
func ValidStatus(s MaintenanceStatus) bool {
	return s == StatusPending || s == StatusCompleted
}

// ServiceType enumerates the service catalog shown on the form.
// ServiceTypeOther is a form-only sentinel: it must be resolved to the
// technician's free text before a record is stored.
type ServiceType string

const (
	ServiceType50A   ServiceType = "Serviço tipo 50A"
	ServiceType50B   ServiceType = "Serviço tipo 50B"
	ServiceTypeOther ServiceType = "Outro"
)

// MaintenanceNature enumerates the maintenance classifications.
// NatureOther follows the same sentinel rule as ServiceTypeOther.
type MaintenanceNature string

const (
	NaturePreventiveProgrammed MaintenanceNature = "Manutenção Preventiva Programada"
	NatureCorrectiveProgrammed MaintenanceNature = "Manutenção Corretiva Programada"
	NatureCorrectiveEmergency  MaintenanceNature = "Manutenção Corretiva Emergencial"
	NatureOther                MaintenanceNature = "Outro"
)

// DateLayout is the calendar-date wire format. Records carry no time component.
const DateLayout = "2006-01-02"

// DefaultTechnician marks a record not yet assigned to a field technician.
const DefaultTechnician = "Técnico não atribuído"

// MaintenanceRecord is one complete maintenance activity performed at one
// municipality on one date. The record owns its stages; the municipality is
// referenced by id only.
type MaintenanceRecord struct {
	ID             string             `json:"id"`
	MunicipalityID string             `json:"municipality_id"`
	Title          string             `json:"title"`
	Nature         string             `json:"nature"`
	Description    string             `json:"description"`
	Date           string             `json:"date"`
	Status         MaintenanceStatus  `json:"status"`
	Stages         []MaintenanceStage `json:"stages"`
	Technician     string             `json:"technician"`
	AINotes        string             `json:"ai_notes,omitempty"`
	IsLegacy       bool               `json:"is_legacy,omitempty"`
	LegacyFileName string             `json:"legacy_file_name,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Stage returns a pointer to the stage with the given id, nil when absent.
func (r *MaintenanceRecord) Stage(stageID string) *MaintenanceStage {
	for i := range r.Stages {
		if r.Stages[i].ID == stageID {
			return &r.Stages[i]
		}
	}
	return nil
}

// CopyStages deep-copies the stage sequence.
func (r MaintenanceRecord) CopyStages() []MaintenanceStage {
	if r.Stages == nil {
		return nil
	}
	out := make([]MaintenanceStage, len(r.Stages))
	for i, s := range r.Stages {
		out[i] = s.Copy()
	}
	return out
}

// ResolveServiceTitle collapses the catalog selection plus companion free
// text into the final stored title. The "Outro" sentinel itself never
// persists: picking it without companion text is a validation failure.
func ResolveServiceTitle(selected ServiceType, custom string) (string, error) {
	if selected != ServiceTypeOther {
		return string(selected), nil
	}
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return "", ErrInvalidSentinel
	}
	return custom, nil
}

// ResolveNature is the nature counterpart of ResolveServiceTitle.
func ResolveNature(selected MaintenanceNature, custom string) (string, error) {
	if selected != NatureOther {
		return string(selected), nil
	}
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return "", ErrInvalidSentinel
	}
	return custom, nil
}

// ServiceTemplates maps catalog services to their checklist text, preloaded
// into the description when the technician picks the service.
var ServiceTemplates = map[ServiceType]string{
	ServiceType50A: `- Manutenção no alimentador 01 e 02
- Serviços realizados: limpeza e reapertos
- Troca dos silicones dos isoladores
- SWG: limpeza e reaperto das conexões
- TX (Transformadores): limpeza e reaperto das conexões, verificação se há vazamentos`,
	ServiceType50B: `- Teste de proteções dos relés
- Megagem dos transformadores
- Megagem de cabos e barramentos`,
}

// DefaultStages returns the blank three-stage template every new record
// starts from.
func DefaultStages() []MaintenanceStage {
	return []MaintenanceStage{
		{ID: uuid.NewString(), Name: "Inspeção Inicial"},
		{ID: uuid.NewString(), Name: "Execução Técnica"},
		{ID: uuid.NewString(), Name: "Finalização"},
	}
}
