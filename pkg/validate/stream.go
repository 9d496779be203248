package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/order_guard/internal/domain"
	"github.com/Gunvolt24/order_guard/internal/ports"
)

// Summary: статистика обработки потока заказов.
type Summary struct {
	Accepted int
	Rejected int
	Invalid  int // не разобрались как заказ
	Failed   int // сбой валидатора, решение не принято
}

func (s Summary) String() string {
	return fmt.Sprintf("%d accepted / %d rejected / %d invalid / %d failed", s.Accepted, s.Rejected, s.Invalid, s.Failed)
}

// ProcessOrder разбирает один заказ, прогоняет его через processor и возвращает вердикт.
func ProcessOrder(ctx context.Context, processor ports.OrderProcessor, raw []byte) (domain.Verdict, error) {
	order, err := DecodeOrder(raw)
	if err != nil {
		return domain.Verdict{}, err
	}
	if _, err := processor.Process(ctx, order); err != nil {
		return domain.Verdict{}, err
	}
	return order.Verdict(), nil
}

// ProcessJSONLStream читает JSONL из reader'а, прогоняет каждую строку и пишет вердикт
// одной строкой JSON на каждый разобранный и решённый заказ. Пустые строки пропускаются,
// невалидные и несработавшие строки только считаются.
func ProcessJSONLStream(ctx context.Context, processor ports.OrderProcessor, ir io.Reader, ow io.Writer) (Summary, error) {
	var res Summary

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		verdict, err := ProcessOrder(ctx, processor, lineBytes)
		switch {
		case errors.Is(err, ErrInvalidOrder):
			res.Invalid++
			continue
		case err != nil:
			res.Failed++
			continue
		}

		if err := writeVerdict(ow, verdict); err != nil {
			return res, err
		}
		if verdict.Reject {
			res.Rejected++
		} else {
			res.Accepted++
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

func writeVerdict(ow io.Writer, verdict domain.Verdict) error {
	line, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	if _, err := ow.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write verdict: %w", err)
	}
	return nil
}
