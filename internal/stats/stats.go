// Package stats reports runtime and storage statistics for the backend.
package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/geofare/internal/citydata"
	"github.com/alexivanou/geofare/internal/config"
	"github.com/jmoiron/sqlx"
)

// Stats is the payload of GET /api/v1/stats
type Stats struct {
	Timestamp time.Time `json:"timestamp"`
	// DatasetVersion is the embedded fallback dataset the client ships with.
	DatasetVersion string        `json:"dataset_version"`
	Memory         MemoryStats   `json:"memory"`
	Database       DatabaseStats `json:"database"`
	Runtime        RuntimeStats  `json:"runtime"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapInuse  uint64 `json:"heap_inuse"`
}

type DatabaseStats struct {
	Type          string      `json:"type"`
	TotalRecords  int64       `json:"total_records"`
	SizeBytes     int64       `json:"size_bytes"`
	TableStats    []TableStat `json:"table_stats"`
	ActiveCities  int64       `json:"active_cities"`
	PopularCities int64       `json:"popular_cities"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// tables reported in TableStats
var tables = []string{"cities", "cab_types"}

// memStatsTTL bounds how often runtime.ReadMemStats is called
const memStatsTTL = 5 * time.Second

// Collector gathers Stats
type Collector struct {
	db        *sqlx.DB
	config    config.DBConfig
	startTime time.Time

	mu        sync.RWMutex
	mem       *MemoryStats
	memReadAt time.Time
	readMem   func(*runtime.MemStats)
}

func NewCollector(db *sqlx.DB, cfg config.DBConfig) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		startTime: time.Now(),
		readMem:   runtime.ReadMemStats,
	}
}

// Collect returns a fresh snapshot; memory figures may be up to memStatsTTL old
func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	db, err := c.databaseStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Timestamp:      time.Now(),
		DatasetVersion: citydata.Version(),
		Memory:         c.memoryStats(),
		Database:       *db,
		Runtime: RuntimeStats{
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
		},
	}, nil
}

func (c *Collector) memoryStats() MemoryStats {
	c.mu.RLock()
	if c.memFresh() {
		mem := *c.mem
		c.mu.RUnlock()
		return mem
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// another caller may have refreshed while we waited for the lock
	if c.memFresh() {
		return *c.mem
	}

	var m runtime.MemStats
	c.readMem(&m)

	c.mem = &MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		HeapAlloc:  m.HeapAlloc,
		HeapInuse:  m.HeapInuse,
	}
	c.memReadAt = time.Now()

	return *c.mem
}

func (c *Collector) databaseStats(ctx context.Context) (*DatabaseStats, error) {
	out := &DatabaseStats{Type: string(c.config.Type)}

	// Size and per-table sizes are best effort; sqlite builds may lack dbstat.
	_ = c.db.GetContext(ctx, &out.SizeBytes, c.query(
		"SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()",
		"SELECT pg_database_size(current_database())",
	))

	for _, table := range tables {
		stat := TableStat{Name: table}
		if err := c.db.GetContext(ctx, &stat.RowCount, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		_ = c.db.GetContext(ctx, &stat.SizeBytes, c.query(
			"SELECT COALESCE(SUM(pgsize), 0) FROM dbstat WHERE name = ?",
			"SELECT COALESCE(pg_total_relation_size($1::regclass), 0)",
		), table)

		out.TotalRecords += stat.RowCount
		out.TableStats = append(out.TableStats, stat)
	}

	var counts struct {
		Active  int64 `db:"active"`
		Popular int64 `db:"popular"`
	}
	err := c.db.GetContext(ctx, &counts, `
		SELECT COUNT(*) AS active,
		       COALESCE(SUM(CASE WHEN is_popular THEN 1 ELSE 0 END), 0) AS popular
		FROM cities
		WHERE COALESCE(is_active, TRUE)`)
	if err != nil {
		return nil, fmt.Errorf("failed to count cities: %w", err)
	}
	out.ActiveCities = counts.Active
	out.PopularCities = counts.Popular

	return out, nil
}

// query picks the statement for the configured dialect
func (c *Collector) query(sqlite, postgres string) string {
	if c.config.Type == config.DBTypePostgreSQL {
		return postgres
	}
	return sqlite
}

func (c *Collector) memFresh() bool {
	return c.mem != nil && time.Since(c.memReadAt) < memStatsTTL
}
