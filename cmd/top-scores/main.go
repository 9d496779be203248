package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/order_guard/internal/scores"
	"github.com/Gunvolt24/order_guard/internal/usecase"
)

// CLI: итоговые оценки студентов (среднее top-K лучших тестов) из JSON-массива или JSONL.
func main() {
	inputPath := flag.String("in", "", "path to score records (JSON array or JSONL). If empty, reads stdin.")
	top := flag.Int("top", 5, "number of best scores averaged per student")
	flag.Parse()

	if err := run(*inputPath, *top, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "top-scores: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, top int, ow io.Writer) error {
	if top <= 0 {
		return fmt.Errorf("top must be positive, got %d", top)
	}

	in := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	records, err := scores.DecodeRecords(raw)
	if err != nil {
		return err
	}

	final, err := usecase.NewScoreService(top).FinalScores(records, 0)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(ow)
	for _, fs := range final {
		if err := enc.Encode(fs); err != nil {
			return fmt.Errorf("write score: %w", err)
		}
	}
	return nil
}
