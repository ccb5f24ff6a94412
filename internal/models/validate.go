package models

import "errors"

// Validation and repository sentinel errors. Controllers map these to HTTP
// responses; none of them escape the handler that triggered the save.
var (
	ErrNotFound         = errors.New("registro não encontrado")
	ErrIncompleteRecord = errors.New("registro incompleto: município não informado ou inexistente")
	ErrInvalidSentinel  = errors.New("tipo de serviço ou natureza 'Outro' sem texto complementar")
)

// ValidateRecord checks the save-time invariants: the municipality reference
// must resolve and the "Outro" sentinel must never persist as the final
// title or nature.
func ValidateRecord(rec MaintenanceRecord, municipalities []Municipality) error {
	if rec.MunicipalityID == "" {
		return ErrIncompleteRecord
	}
	if _, ok := FindMunicipality(municipalities, rec.MunicipalityID); !ok {
		return ErrIncompleteRecord
	}
	if rec.Title == string(ServiceTypeOther) || rec.Nature == string(NatureOther) {
		return ErrInvalidSentinel
	}
	return nil
}
