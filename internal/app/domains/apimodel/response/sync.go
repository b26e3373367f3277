package response

import (
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpsynclog"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svsync"
)

// PrmSyncResponse PRM 导入结果
type PrmSyncResponse struct {
	RunID             int64  `json:"run_id"`
	Status            string `json:"status"`
	RetailersUpserted int    `json:"retailers_upserted"`
	ProductsUpserted  int    `json:"products_upserted"`
	InventoryRows     int    `json:"inventory_rows"`
	ActivationsRows   int    `json:"activations_rows"`
}

// FromRunResult 转换导入结果
func FromRunResult(result *svsync.RunResult) *PrmSyncResponse {
	return &PrmSyncResponse{
		RunID:             result.RunID,
		Status:            "success",
		RetailersUpserted: result.Stats.RetailersUpserted,
		ProductsUpserted:  result.Stats.ProductsUpserted,
		InventoryRows:     result.Stats.InventoryRows,
		ActivationsRows:   result.Stats.ActivationRows,
	}
}

// SyncLogsResponse 导入日志列表
type SyncLogsResponse struct {
	Total int           `json:"total"`
	Logs  []SyncLogItem `json:"logs"`
}

// SyncLogItem 一条导入日志
type SyncLogItem struct {
	ID              int64      `json:"id"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	Status          string     `json:"status"`
	RowsImported    *int       `json:"rows_imported"`
	DurationSeconds *int       `json:"duration_seconds"`
	ErrorMessage    string     `json:"error_message,omitempty"`
}

// FromRunLogs 转换导入日志列表
func FromRunLogs(logs []rpsynclog.RunLog) *SyncLogsResponse {
	items := make([]SyncLogItem, 0, len(logs))
	for _, log := range logs {
		item := SyncLogItem{
			ID:           log.ID,
			StartedAt:    log.StartedAt,
			FinishedAt:   log.FinishedAt,
			Status:       log.Status,
			RowsImported: log.RowsImported,
			ErrorMessage: log.ErrorMessage,
		}
		if log.FinishedAt != nil {
			duration := int(log.FinishedAt.Sub(log.StartedAt).Seconds())
			item.DurationSeconds = &duration
		}
		items = append(items, item)
	}
	return &SyncLogsResponse{
		Total: len(items),
		Logs:  items,
	}
}
