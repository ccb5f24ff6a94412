// Package reports turns a record set into exportable artifacts: a tabular
// report (CSV and XLSX) and a slide-deck presentation (PPTX). All builders
// are pure transforms over the records they are handed; serializing the same
// input twice yields byte-identical output.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"hv_maint/internal/models"
)

// unresolvedPlaceholder is rendered when a municipality id cannot be
// resolved. An unresolvable reference is recoverable, never an export error.
const unresolvedPlaceholder = "N/A"

// SummaryRow is one record flattened for the summary sheet.
type SummaryRow struct {
	ID           string
	Date         string
	Municipality string
	Region       string
	Technician   string
	Service      string
	Nature       string
	Status       string
	Description  string
}

// DetailRow is one (record, stage) pair for the per-stage sheet. RecordID
// keeps detail rows joinable back to their summary row.
type DetailRow struct {
	RecordID      string
	Date          string
	Municipality  string
	StageName     string
	StageDesc     string
	EvidenceCount int
}

// Table is the flat tabular representation of a record set.
type Table struct {
	SummaryRows []SummaryRow
	DetailRows  []DetailRow
}

var (
	summaryHeader = []string{"ID", "Data", "Município", "Região", "Técnico", "Serviço", "Natureza", "Status", "Resumo Geral"}
	detailHeader  = []string{"ID Manutenção", "Data", "Local", "Etapa", "Descrição da Etapa", "Qtd Fotos"}
)

// BuildTable flattens records into summary and detail rows, resolving
// municipality names against the reference set.
func BuildTable(records []models.MaintenanceRecord, municipalities []models.Municipality) Table {
	var t Table
	for _, r := range records {
		munName, munRegion := unresolvedPlaceholder, unresolvedPlaceholder
		if mun, ok := models.FindMunicipality(municipalities, r.MunicipalityID); ok {
			munName = mun.Name
			munRegion = string(mun.Region)
		}

		t.SummaryRows = append(t.SummaryRows, SummaryRow{
			ID:           r.ID,
			Date:         r.Date,
			Municipality: munName,
			Region:       munRegion,
			Technician:   r.Technician,
			Service:      r.Title,
			Nature:       r.Nature,
			Status:       string(r.Status),
			Description:  r.Description,
		})

		for _, stage := range r.Stages {
			t.DetailRows = append(t.DetailRows, DetailRow{
				RecordID:      r.ID,
				Date:          r.Date,
				Municipality:  munName,
				StageName:     stage.Name,
				StageDesc:     stage.Description,
				EvidenceCount: stage.EvidenceCount(),
			})
		}
	}
	return t
}

// WriteCSV emits the table as a UTF-8 CSV with byte-order marker: a summary
// section followed by a detail section, each with its own header row.
// encoding/csv quoting guarantees exact round-tripping of special characters.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("falha ao escrever cabeçalho do resumo: %w", err)
	}
	for _, row := range t.SummaryRows {
		rec := []string{row.ID, row.Date, row.Municipality, row.Region, row.Technician, row.Service, row.Nature, row.Status, row.Description}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	// Blank line separates the two sections.
	if err := cw.Write([]string{}); err != nil {
		return err
	}

	if err := cw.Write(detailHeader); err != nil {
		return fmt.Errorf("falha ao escrever cabeçalho das etapas: %w", err)
	}
	for _, row := range t.DetailRows {
		rec := []string{row.RecordID, row.Date, row.Municipality, row.StageName, row.StageDesc, strconv.Itoa(row.EvidenceCount)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX emits the table as a two-sheet workbook matching the original
// spreadsheet export: "Resumo Manutenções" and "Detalhes por Etapa".
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Resumo Manutenções"
	const detailSheet = "Detalhes por Etapa"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(detailSheet); err != nil {
		return err
	}

	if err := writeSheetRow(f, summarySheet, 1, summaryHeader); err != nil {
		return err
	}
	for i, row := range t.SummaryRows {
		cells := []string{row.ID, row.Date, row.Municipality, row.Region, row.Technician, row.Service, row.Nature, row.Status, row.Description}
		if err := writeSheetRow(f, summarySheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := writeSheetRow(f, detailSheet, 1, detailHeader); err != nil {
		return err
	}
	for i, row := range t.DetailRows {
		cells := []string{row.RecordID, row.Date, row.Municipality, row.StageName, row.StageDesc, strconv.Itoa(row.EvidenceCount)}
		if err := writeSheetRow(f, detailSheet, i+2, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// ExportFilename builds the date-stamped filename for a download, e.g.
// Relatorio_Tecnico_HV_2024-05-15.csv.
func ExportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("Relatorio_Tecnico_HV_%s.%s", now.Format(models.DateLayout), ext)
}
