package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Gunvolt24/order_guard/internal/inventory"
	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/logger"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

// CLI: прогоняет заказы из файла или stdin через встроенные валидаторы и печатает вердикты в stdout.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	stockPath := flag.String("stock", "", "YAML stock seed; without it the stock validator is not registered")
	maxQuantity := flag.Int("max-quantity", 100, "max quantity per order line (<=0 disables the limit)")
	tolerance := flag.Float64("tolerance", 0.01, "allowed difference between total_charge and line totals")
	blocked := flag.String("blocked", "", "comma-separated blocked customer ids")
	verbose := flag.Bool("v", false, "log validator failures and rejections to stderr")
	flag.Parse()

	if err := run(*inputPath, validate.InputFormat(*formatStr), *stockPath, *maxQuantity, *tolerance, *blocked, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "validate-orders: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, format validate.InputFormat, stockPath string,
	maxQuantity int, tolerance float64, blocked string, verbose bool,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg, err := newLogger(verbose)
	if err != nil {
		return err
	}

	blockedIDs, err := parseIDs(blocked)
	if err != nil {
		return err
	}

	var stock ports.StockReader
	if stockPath != "" {
		levels, err := inventory.LoadSeedFile(stockPath)
		if err != nil {
			return err
		}
		stock = inventory.NewMemoryStock(levels)
	}

	rules := validate.Rules{MaxQuantity: maxQuantity, ChargeTolerance: tolerance, BlockedCustomers: blockedIDs}
	registry := validation.NewRegistry(validate.DefaultValidators(rules, stock)...)
	pipeline := validation.NewPipeline(registry, logg, &validation.LogRejection{Log: logg})

	var summary validate.Summary
	if inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		summary, err = validate.ProcessReader(ctx, pipeline, os.Stdin, format, os.Stdout)
	} else {
		summary, err = validate.ProcessFile(ctx, pipeline, inputPath, format, os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("%w (%s)", err, summary)
	}

	fmt.Fprintf(os.Stderr, "validation done (%s)\n", summary)
	if summary.Failed > 0 {
		return fmt.Errorf("%d orders not decided: validator execution failed", summary.Failed)
	}
	return nil
}

func newLogger(verbose bool) (ports.Logger, error) {
	if !verbose {
		return logger.NewFromZap(zap.NewNop()), nil
	}
	logg, _, err := logger.NewZapLogger(false)
	return logg, err
}

func parseIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("blocked customer id %q: %w", p, err)
		}
		out = append(out, id)
	}
	return out, nil
}
