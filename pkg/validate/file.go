package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/order_guard/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ResolveFormat: для auto формат определяется по расширению, по умолчанию JSON.
func ResolveFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.ToLower(filepath.Ext(filePath)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// ProcessFile обрабатывает файл JSON (один заказ) или JSONL (заказ на строку) и пишет вердикты в ow.
func ProcessFile(ctx context.Context, processor ports.OrderProcessor, filePath string, format InputFormat, ow io.Writer) (Summary, error) {
	format = ResolveFormat(filePath, format)
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ProcessReader(ctx, processor, file, format, ow)
}

// ProcessReader: то же, что ProcessFile, но для уже открытого источника (stdin).
func ProcessReader(ctx context.Context, processor ports.OrderProcessor, ir io.Reader, format InputFormat, ow io.Writer) (Summary, error) {
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		verdict, err := ProcessOrder(ctx, processor, raw)
		if errors.Is(err, ErrInvalidOrder) {
			return Summary{Invalid: 1}, err
		}
		if err != nil {
			return Summary{Failed: 1}, err
		}
		if err := writeVerdict(ow, verdict); err != nil {
			return Summary{}, err
		}
		if verdict.Reject {
			return Summary{Rejected: 1}, nil
		}
		return Summary{Accepted: 1}, nil

	case FormatJSONL:
		return ProcessJSONLStream(ctx, processor, ir, ow)

	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}
