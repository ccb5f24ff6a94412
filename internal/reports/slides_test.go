package reports

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hv_maint/internal/models"
)

// 1x1 transparent PNG.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func deckFixture() []models.MaintenanceRecord {
	return []models.MaintenanceRecord{
		{
			ID:             "r1",
			MunicipalityID: "m1",
			Title:          "Serviço tipo 50A",
			Nature:         string(models.NaturePreventiveProgrammed),
			Date:           "2024-05-15",
			Status:         models.StatusCompleted,
			Technician:     "João Silva",
			Stages: []models.MaintenanceStage{
				{
					ID: "s1", Name: "Inspeção Inicial", Description: "fuligem",
					Before: &models.MaintenanceImage{ID: "i1", Data: tinyPNG},
				},
				{ID: "s2", Name: "Execução Técnica"},
			},
		},
		{
			ID:             "r2",
			MunicipalityID: "m2",
			Title:          "Serviço tipo 50B",
			Nature:         string(models.NatureCorrectiveEmergency),
			Date:           "2024-06-01",
			Status:         models.StatusPending,
			Technician:     "Maria Souza",
		},
	}
}

func TestBuildDeckSlideSequence(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	deck := BuildDeck(deckFixture(), models.AmazonasMunicipalities, now)

	// Cover + (overview + 2 stages) + (overview, zero stages).
	require.Len(t, deck.Slides, 5)
	assert.Equal(t, SlideCover, deck.Slides[0].Kind)
	assert.Equal(t, 2, deck.Slides[0].RecordCount)
	assert.Equal(t, SlideOverview, deck.Slides[1].Kind)
	assert.Equal(t, SlideStage, deck.Slides[2].Kind)
	assert.Equal(t, SlideStage, deck.Slides[3].Kind)
	assert.Equal(t, SlideOverview, deck.Slides[4].Kind)
}

func TestBuildDeckZeroStagesEmitsOverviewOnly(t *testing.T) {
	records := []models.MaintenanceRecord{{ID: "r", MunicipalityID: "m1", Title: "x"}}
	deck := BuildDeck(records, models.AmazonasMunicipalities, time.Now())

	require.Len(t, deck.Slides, 2)
	assert.Equal(t, SlideCover, deck.Slides[0].Kind)
	assert.Equal(t, SlideOverview, deck.Slides[1].Kind)
}

func TestBuildDeckFixedSlotOrder(t *testing.T) {
	deck := BuildDeck(deckFixture(), models.AmazonasMunicipalities, time.Now())

	stage := deck.Slides[2]
	require.Equal(t, SlideStage, stage.Kind)

	// Fixed Before/During/After order regardless of occupancy.
	assert.Equal(t, "Antes", stage.Slots[0].Label)
	assert.Equal(t, "Durante", stage.Slots[1].Label)
	assert.Equal(t, "Depois", stage.Slots[2].Label)
	assert.True(t, stage.Slots[0].Occupied())
	assert.False(t, stage.Slots[1].Occupied())
	assert.False(t, stage.Slots[2].Occupied())

	empty := deck.Slides[3]
	for _, slot := range empty.Slots {
		assert.False(t, slot.Occupied())
	}
}

func TestBuildDeckUnresolvedMunicipality(t *testing.T) {
	records := []models.MaintenanceRecord{{ID: "r", MunicipalityID: "fantasma", Title: "x"}}
	deck := BuildDeck(records, models.AmazonasMunicipalities, time.Now())

	assert.Equal(t, "N/A", deck.Slides[1].Municipality)
	assert.Equal(t, "N/A", deck.Slides[1].Region)
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("entry %s not found in archive", name)
	return ""
}

func TestWritePPTXArchiveLayout(t *testing.T) {
	deck := BuildDeck(deckFixture(), models.AmazonasMunicipalities, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, deck))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide5.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/media/image1.png",
	} {
		assert.True(t, names[want], "missing archive entry %s", want)
	}
	assert.False(t, names["ppt/slides/slide6.xml"])

	pres := readZipEntry(t, zr, "ppt/presentation.xml")
	assert.Contains(t, pres, `cx="12192000" cy="6858000"`, "deck must be 16:9")
}

func TestWritePPTXStageSlidePlaceholders(t *testing.T) {
	deck := BuildDeck(deckFixture(), models.AmazonasMunicipalities, time.Now())

	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, deck))
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	// Slide 3: one occupied slot (before) and two pending placeholders.
	slide := readZipEntry(t, zr, "ppt/slides/slide3.xml")
	assert.Equal(t, 1, strings.Count(slide, "<p:pic>"))
	assert.Equal(t, 2, strings.Count(slide, "Evidência pendente"))

	// Slide 4: no evidence at all, three pending placeholders.
	slide = readZipEntry(t, zr, "ppt/slides/slide4.xml")
	assert.Equal(t, 0, strings.Count(slide, "<p:pic>"))
	assert.Equal(t, 3, strings.Count(slide, "Evidência pendente"))
}

func TestWritePPTXCorruptImageDegradesToPlaceholder(t *testing.T) {
	records := []models.MaintenanceRecord{{
		ID: "r", MunicipalityID: "m1", Title: "x",
		Stages: []models.MaintenanceStage{{
			ID: "s", Name: "Etapa",
			Before: &models.MaintenanceImage{ID: "i", Data: "data:image/png;base64,%%%não-é-base64%%%"},
		}},
	}}
	deck := BuildDeck(records, models.AmazonasMunicipalities, time.Now())

	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, deck))
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	slide := readZipEntry(t, zr, "ppt/slides/slide3.xml")
	assert.Equal(t, 0, strings.Count(slide, "<p:pic>"))
	assert.Equal(t, 3, strings.Count(slide, "Evidência pendente"))
}

func TestWritePPTXIsDeterministic(t *testing.T) {
	deck := BuildDeck(deckFixture(), models.AmazonasMunicipalities, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	var a, b bytes.Buffer
	require.NoError(t, WritePPTX(&a, deck))
	require.NoError(t, WritePPTX(&b, deck))
	assert.Equal(t, a.Bytes(), b.Bytes())
}
