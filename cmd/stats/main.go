package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/database"
	"github.com/alexivanou/geofare/internal/stats"
	"go.uber.org/zap"
)

func main() {
	var (
		remote = flag.Bool("remote", false, "Fetch statistics from the running API at API_BASE_URL")
		format = flag.String("format", os.Getenv("OUTPUT_FORMAT"), "Output format: json or text")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	var statistics *stats.Stats
	if *remote {
		logger.Info("Fetching statistics...", zap.String("base_url", cfg.Client.BaseURL))
		statistics, err = fetchRemote(ctx, cfg.Client)
	} else {
		statistics, err = collectLocal(ctx, cfg.DB, logger)
	}
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	switch *format {
	case "", "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
}

func collectLocal(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (*stats.Stats, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg, "migrations"); err != nil {
		return nil, err
	}

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.Type)))
	return stats.NewCollector(db, cfg).Collect(ctx)
}

func fetchRemote(ctx context.Context, cfg config.ClientConfig) (*stats.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats request failed: %s", resp.Status)
	}

	var s stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode statistics: %w", err)
	}
	return &s, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Geo/Fare Statistics ===")
	fmt.Printf("Timestamp:       %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Dataset version: %s\n", s.DatasetVersion)
	fmt.Println()

	fmt.Println("--- Memory Statistics ---")
	fmt.Printf("Heap in use:     %s\n", formatBytes(s.Memory.HeapInuse))
	fmt.Printf("GC cycles:       %d\n", s.Memory.NumGC)
	fmt.Println()

	fmt.Println("--- Database Statistics ---")
	fmt.Printf("Type:            %s\n", s.Database.Type)
	fmt.Printf("Size:            %s\n", formatBytes(uint64(s.Database.SizeBytes)))
	fmt.Printf("Active cities:   %d (%d popular)\n", s.Database.ActiveCities, s.Database.PopularCities)
	fmt.Println()
	fmt.Println("Tables:")
	for _, ts := range s.Database.TableStats {
		fmt.Printf("  %-12s %8d rows", ts.Name, ts.RowCount)
		if ts.SizeBytes > 0 {
			fmt.Printf(" (%s)", formatBytes(uint64(ts.SizeBytes)))
		}
		fmt.Println()
	}
	fmt.Println()

	fmt.Println("--- Runtime Statistics ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
