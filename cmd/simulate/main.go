package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/simulation"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfg := config.LoadConfig()

	minDepth := flag.Int("min-depth", cfg.SimMinDepth, "shallowest search depth")
	maxDepth := flag.Int("max-depth", cfg.SimMaxDepth, "deepest search depth")
	workers := flag.Int("workers", cfg.SimWorkers, "number of matches played in parallel")
	rows := flag.Int("rows", cfg.Geometry.Rows, "board rows")
	columns := flag.Int("columns", cfg.Geometry.Columns, "board columns")
	output := flag.String("output", "", "also write the full report as JSON to this file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := simulation.Runner{
		Geometry: domain.Geometry{Rows: *rows, Columns: *columns},
		MinDepth: *minDepth,
		MaxDepth: *maxDepth,
		Workers:  *workers,
	}
	report, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	for _, s := range report.Summary {
		fmt.Printf("Mean winning ratio for the first player when difference in depth is %d: %v\n", s.Diff, s.MeanScore)
	}

	if *output != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("encode report: %v", err)
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			log.Fatalf("write report: %v", err)
		}
	}
}
