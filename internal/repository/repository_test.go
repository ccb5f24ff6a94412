package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hv_maint/internal/models"
)

func TestCreateDefaults(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1", Title: string(models.ServiceType50A)})

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, time.Now().Format(models.DateLayout), rec.Date)
	assert.Equal(t, models.DefaultTechnician, rec.Technician)
	require.Len(t, rec.Stages, 3)
	assert.Equal(t, "Inspeção Inicial", rec.Stages[0].Name)
	assert.Equal(t, "Execução Técnica", rec.Stages[1].Name)
	assert.Equal(t, "Finalização", rec.Stages[2].Name)
}

func TestCreatePrependsMostRecentFirst(t *testing.T) {
	repo := New()
	first := repo.Create(CreateInput{MunicipalityID: "m1"})
	second := repo.Create(CreateInput{MunicipalityID: "m2"})

	all := repo.List(nil)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestUpdateMergesAndPreservesStages(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1", Description: "antes"})
	stageCount := len(rec.Stages)

	desc := "depois"
	status := models.StatusCompleted
	updated, err := repo.Update(rec.ID, UpdateInput{Description: &desc, Status: &status})
	require.NoError(t, err)

	// Stages not part of the patch must survive untouched.
	assert.Len(t, updated.Stages, stageCount)
	assert.Equal(t, "depois", updated.Description)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
}

func TestUpdateNotFound(t *testing.T) {
	repo := New()
	desc := "x"
	_, err := repo.Update("missing", UpdateInput{Description: &desc})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemove(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1"})

	require.NoError(t, repo.Remove(rec.ID))
	assert.ErrorIs(t, repo.Remove(rec.ID), models.ErrNotFound)
	assert.Empty(t, repo.List(nil))
}

func TestClone(t *testing.T) {
	repo := New(models.SeedRecords()...)
	src, err := repo.Get("rec1")
	require.NoError(t, err)

	dup, err := repo.Clone("rec1")
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, models.StatusPending, dup.Status)
	assert.Contains(t, dup.Title, "Cópia")
	assert.Equal(t, time.Now().Format(models.DateLayout), dup.Date)
	assert.Equal(t, src.MunicipalityID, dup.MunicipalityID)
	assert.Equal(t, src.Technician, dup.Technician)
	assert.Equal(t, src.Description, dup.Description)
	require.Len(t, dup.Stages, len(src.Stages))

	// Deep copy: mutating the clone's stage must not leak into the source.
	dup.Stages[0].SetSlot(models.SlotAfter, models.MaintenanceImage{ID: "x", Data: "d"})
	srcAgain, err := repo.Get("rec1")
	require.NoError(t, err)
	assert.Nil(t, srcAgain.Stages[0].After)
}

func TestCloneNotFound(t *testing.T) {
	repo := New()
	_, err := repo.Clone("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetAndClearStageImage(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1"})
	stageID := rec.Stages[0].ID

	updated, err := repo.SetStageImage(rec.ID, stageID, models.SlotBefore, models.MaintenanceImage{Data: "payload"})
	require.NoError(t, err)
	require.NotNil(t, updated.Stages[0].Before)
	assert.NotEmpty(t, updated.Stages[0].Before.ID)
	assert.Equal(t, 1, updated.Stages[0].EvidenceCount())

	updated, err = repo.ClearStageImage(rec.ID, stageID, models.SlotBefore)
	require.NoError(t, err)
	assert.Nil(t, updated.Stages[0].Before)
	assert.Equal(t, 0, updated.Stages[0].EvidenceCount())

	_, err = repo.SetStageImage(rec.ID, "missing-stage", models.SlotBefore, models.MaintenanceImage{Data: "p"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAppendAINoteAfterDelete(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1"})

	require.NoError(t, repo.AppendAINote(rec.ID, "primeira análise"))
	require.NoError(t, repo.AppendAINote(rec.ID, "segunda análise"))
	got, err := repo.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "primeira análise\n\nsegunda análise", got.AINotes)

	// A completion handler targeting a deleted record must not blow up.
	require.NoError(t, repo.Remove(rec.ID))
	assert.ErrorIs(t, repo.AppendAINote(rec.ID, "tarde demais"), models.ErrNotFound)
}

func TestListWithPredicate(t *testing.T) {
	repo := New()
	repo.Create(CreateInput{MunicipalityID: "m1", Status: models.StatusCompleted})
	repo.Create(CreateInput{MunicipalityID: "m2"})

	pending := repo.List(func(r models.MaintenanceRecord) bool {
		return r.Status == models.StatusPending
	})
	require.Len(t, pending, 1)
	assert.Equal(t, "m2", pending[0].MunicipalityID)
}

func TestReturnedRecordsDoNotAliasStore(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1"})
	stageID := rec.Stages[0].ID

	// Writing through an earlier snapshot must not reach the store.
	listed := repo.List(nil)
	require.Len(t, listed, 1)
	listed[0].Stages[0].SetSlot(models.SlotBefore, models.MaintenanceImage{ID: "alias", Data: "x"})
	stored, err := repo.Get(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Stages[0].Before)

	// And a store mutation must not show up in a snapshot taken before it.
	before := repo.List(nil)
	_, err = repo.SetStageImage(rec.ID, stageID, models.SlotDuring, models.MaintenanceImage{Data: "payload"})
	require.NoError(t, err)
	assert.Nil(t, before[0].Stages[0].During)

	got, err := repo.Get(rec.ID)
	require.NoError(t, err)
	got.Stages[0].ClearSlot(models.SlotDuring)
	again, err := repo.Get(rec.ID)
	require.NoError(t, err)
	assert.NotNil(t, again.Stages[0].During)
}

func TestConcurrentSlotMutationWithReaders(t *testing.T) {
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1"})
	stageID := rec.Stages[0].ID

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := repo.SetStageImage(rec.ID, stageID, models.SlotBefore, models.MaintenanceImage{Data: "p"})
			assert.NoError(t, err)
			_, err = repo.ClearStageImage(rec.ID, stageID, models.SlotBefore)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, snap := range repo.List(nil) {
				// Reading slot state off the snapshot must stay safe while
				// the other goroutine mutates the stored record.
				_ = snap.Stages[0].EvidenceCount()
			}
		}
	}()
	wg.Wait()
}

func TestStageIDsNormalizedOnIntake(t *testing.T) {
	stages := []models.MaintenanceStage{
		{ID: "dup", Name: "Inspeção Inicial"},
		{ID: "dup", Name: "Execução Técnica"},
		{ID: "", Name: "Finalização"},
	}
	repo := New()
	rec := repo.Create(CreateInput{MunicipalityID: "m1", Stages: stages})

	require.Len(t, rec.Stages, 3)
	seen := map[string]bool{}
	for _, s := range rec.Stages {
		require.NotEmpty(t, s.ID)
		assert.False(t, seen[s.ID], "stage id %q repeated within the record", s.ID)
		seen[s.ID] = true
	}
	// The first occupant keeps its id, later entries are reassigned.
	assert.Equal(t, "dup", rec.Stages[0].ID)
	assert.NotEqual(t, "dup", rec.Stages[1].ID)

	// Every stage stays addressable for slot assignment.
	updated, err := repo.SetStageImage(rec.ID, rec.Stages[2].ID, models.SlotAfter, models.MaintenanceImage{Data: "p"})
	require.NoError(t, err)
	assert.NotNil(t, updated.Stages[2].After)

	// A stages patch through Update goes through the same normalization.
	patch := []models.MaintenanceStage{{ID: "x"}, {ID: "x"}}
	patched, err := repo.Update(rec.ID, UpdateInput{Stages: &patch})
	require.NoError(t, err)
	require.Len(t, patched.Stages, 2)
	assert.NotEqual(t, patched.Stages[0].ID, patched.Stages[1].ID)
}
