package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hv_maint/internal/models"
)

func tableFixture() []models.MaintenanceRecord {
	return []models.MaintenanceRecord{
		{
			ID:             "r1",
			MunicipalityID: "m1",
			Title:          "Serviço tipo 50A",
			Nature:         string(models.NaturePreventiveProgrammed),
			Description:    `Reaperto no TX-01, o chamado "urgente" do mês`,
			Date:           "2024-05-15",
			Status:         models.StatusCompleted,
			Technician:     "João Silva",
			Stages: []models.MaintenanceStage{
				{
					ID: "s1", Name: "Inspeção Inicial", Description: "fuligem nos isoladores",
					Before: &models.MaintenanceImage{ID: "i1", Data: "x"},
					After:  &models.MaintenanceImage{ID: "i2", Data: "y"},
				},
				{ID: "s2", Name: "Execução Técnica"},
			},
		},
		{
			ID:             "r2",
			MunicipalityID: "nao-existe",
			Title:          "Serviço tipo 50B",
			Nature:         string(models.NatureCorrectiveEmergency),
			Date:           "2024-06-01",
			Status:         models.StatusPending,
			Technician:     "Maria Souza",
		},
	}
}

func TestBuildTableResolvesMunicipality(t *testing.T) {
	table := BuildTable(tableFixture(), models.AmazonasMunicipalities)

	require.Len(t, table.SummaryRows, 2)
	assert.Equal(t, "Tabatinga", table.SummaryRows[0].Municipality)
	assert.Equal(t, string(models.RegionSolimoes), table.SummaryRows[0].Region)

	// Unresolvable reference renders the placeholder, never an error.
	assert.Equal(t, "N/A", table.SummaryRows[1].Municipality)
	assert.Equal(t, "N/A", table.SummaryRows[1].Region)
}

func TestBuildTableDetailRows(t *testing.T) {
	table := BuildTable(tableFixture(), models.AmazonasMunicipalities)

	require.Len(t, table.DetailRows, 2)
	assert.Equal(t, "r1", table.DetailRows[0].RecordID)
	assert.Equal(t, "Inspeção Inicial", table.DetailRows[0].StageName)
	assert.Equal(t, 2, table.DetailRows[0].EvidenceCount)
	assert.Equal(t, 0, table.DetailRows[1].EvidenceCount)
}

func TestWriteCSVRoundTripsQuotes(t *testing.T) {
	table := BuildTable(tableFixture(), models.AmazonasMunicipalities)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "CSV must start with a UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(raw[3:]))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Header + 2 summary rows + detail header + 2 detail rows.
	require.Len(t, rows, 6)
	assert.Equal(t, "Resumo Geral", rows[0][8])

	// The quoted description survives the round trip unchanged.
	assert.Equal(t, `Reaperto no TX-01, o chamado "urgente" do mês`, rows[1][8])
}

func TestWriteCSVIsDeterministic(t *testing.T) {
	table := BuildTable(tableFixture(), models.AmazonasMunicipalities)

	var a, b bytes.Buffer
	require.NoError(t, WriteCSV(&a, table))
	require.NoError(t, WriteCSV(&b, table))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteXLSXSheets(t *testing.T) {
	table := BuildTable(tableFixture(), models.AmazonasMunicipalities)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Resumo Manutenções")
	assert.Contains(t, f.GetSheetList(), "Detalhes por Etapa")

	got, err := f.GetCellValue("Resumo Manutenções", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Tabatinga", got)

	got, err = f.GetCellValue("Detalhes por Etapa", "F2")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "Relatorio_Tecnico_HV_2024-05-15.csv", ExportFilename("csv", now))
	assert.Equal(t, "Relatorio_Tecnico_HV_2024-05-15.pptx", ExportFilename("pptx", now))
}
