package models

import "time"

// SeedRecords returns the demo records the dashboard boots with when no
// other data source is configured.
func SeedRecords() []MaintenanceRecord {
	return []MaintenanceRecord{
		{
			ID:             "rec1",
			MunicipalityID: "m1",
			Title:          string(ServiceType50A),
			Nature:         string(NaturePreventiveProgrammed),
			Description:    "Manutenção preventiva semestral realizada nos ativos de alta tensão em Tabatinga.",
			Date:           "2024-05-15",
			Status:         StatusCompleted,
			Technician:     "João Silva",
			CreatedAt:      time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			Stages: []MaintenanceStage{
				{
					ID:          "stg1",
					Name:        "Inspeção Inicial",
					Description: "Verificação inicial do transformador TX-01 antes da limpeza e reaperto. Presença de fuligem nos isoladores.",
					Before:      &MaintenanceImage{ID: "img-init-1", Data: "https://images.unsplash.com/photo-1621905252507-b35482cd34b4?q=80&w=400&auto=format&fit=crop"},
				},
				{
					ID:          "stg2",
					Name:        "Execução Técnica",
					Description: "Realizado reaperto de conexões e limpeza química dos barramentos.",
					During:      &MaintenanceImage{ID: "img-exec-1", Data: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?q=80&w=400&auto=format&fit=crop"},
				},
			},
		},
	}
}
