package main

import (
	"database/sql"

	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/repo"
)

// storeCollector exposes user and per-status task counts on /metrics.
func storeCollector(db *sql.DB) *metrics.StoreCollector {
	return metrics.NewStoreCollector(
		repo.NewUserRepo(db).Count,
		repo.NewTaskRepo(db).CountByStatus,
	)
}
