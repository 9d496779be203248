package scores_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/order_guard/internal/scores"
)

func TestReadJSONL_OK(t *testing.T) {
	input := `{"student_id":"s1","test_id":"t1","test_score":90}

{"student_id":"s1","test_id":"t2","test_score":70.5}
`
	got, err := scores.ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].TestScore != 70.5 {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestReadJSONL_Errors(t *testing.T) {
	cases := map[string]string{
		"broken":        `{"student_id":`,
		"unknown field": `{"student_id":"s1","grade":"A"}`,
		"no student":    `{"test_id":"t1","test_score":1}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scores.ReadJSONL(strings.NewReader("\n" + input))
			if !errors.Is(err, scores.ErrInvalidRecord) {
				t.Fatalf("want ErrInvalidRecord, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("error must name the line, got %v", err)
			}
		})
	}
}

func TestDecodeRecords_ArrayAndJSONL(t *testing.T) {
	arr := []byte(` [{"student_id":"a","test_id":"t1","test_score":10},{"student_id":"b","test_id":"t1","test_score":20}]`)
	got, err := scores.DecodeRecords(arr)
	if err != nil || len(got) != 2 || got[1].StudentID != "b" {
		t.Fatalf("array: got %+v, err %v", got, err)
	}

	lines := []byte("{\"student_id\":\"a\",\"test_id\":\"t1\",\"test_score\":10}\n")
	got, err = scores.DecodeRecords(lines)
	if err != nil || len(got) != 1 {
		t.Fatalf("jsonl: got %+v, err %v", got, err)
	}

	got, err = scores.DecodeRecords(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty: got %+v, err %v", got, err)
	}
}

func TestDecodeRecords_InvalidArray(t *testing.T) {
	cases := map[string]string{
		"broken":     `[{"student_id":`,
		"unknown":    `[{"student_id":"a","grade":1}]`,
		"no student": `[{"test_id":"t1","test_score":1}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := scores.DecodeRecords([]byte(input)); !errors.Is(err, scores.ErrInvalidRecord) {
				t.Fatalf("want ErrInvalidRecord, got %v", err)
			}
		})
	}
}
