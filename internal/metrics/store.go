package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersDesc = prometheus.NewDesc("todo_users", "Number of registered users", nil, nil)
	tasksDesc = prometheus.NewDesc("todo_tasks", "Number of stored tasks by status", []string{"status"}, nil)
)

// StoreCollector queries the store on every scrape. A failed query drops its
// gauge from that scrape.
type StoreCollector struct {
	countUsers func(ctx context.Context) (int, error)
	countTasks func(ctx context.Context) (map[string]int, error)
	timeout    time.Duration
}

func NewStoreCollector(
	countUsers func(ctx context.Context) (int, error),
	countTasks func(ctx context.Context) (map[string]int, error),
) *StoreCollector {
	return &StoreCollector{countUsers: countUsers, countTasks: countTasks, timeout: 2 * time.Second}
}

func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- usersDesc
	ch <- tasksDesc
}

func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if n, err := c.countUsers(ctx); err != nil {
		slog.Warn("metrics: count users", "err", err)
	} else {
		ch <- prometheus.MustNewConstMetric(usersDesc, prometheus.GaugeValue, float64(n))
	}

	byStatus, err := c.countTasks(ctx)
	if err != nil {
		slog.Warn("metrics: count tasks", "err", err)
		return
	}
	for status, n := range byStatus {
		ch <- prometheus.MustNewConstMetric(tasksDesc, prometheus.GaugeValue, float64(n), status)
	}
}
