package ledger

import (
	"context"
	"encoding/json"
	"testing"
)

func day(date string) map[string]any {
	return map[string]any{
		"date":       date,
		"day":        "שני",
		"start_time": "09:00",
		"end_time":   "17:00",
		"totalHours": "8.00",
	}
}

func TestMergeDaysUpsertsByDate(t *testing.T) {
	first := MergeDays(nil, []map[string]any{day("2025-03-05")})
	if len(first) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(first))
	}

	updated := day("2025-03-05")
	updated["task"] = "inventory"
	second := MergeDays(first, []map[string]any{updated})
	if len(second) != 1 {
		t.Fatalf("expected merge to stay at 1 entry, got %d", len(second))
	}
	if second[0].Task != "inventory" {
		t.Fatalf("expected second write to win, got task %q", second[0].Task)
	}
}

func TestMergeDaysSortsAscending(t *testing.T) {
	merged := MergeDays(nil, []map[string]any{
		day("2025-03-05"),
		day("2025-03-01"),
		day("2025-03-10"),
	})

	want := []string{"2025-03-01", "2025-03-05", "2025-03-10"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(merged))
	}
	for i, date := range want {
		if merged[i].Date != date {
			t.Fatalf("position %d: expected %s, got %s", i, date, merged[i].Date)
		}
	}
}

func TestMergeDaysSkipsDatelessRows(t *testing.T) {
	merged := MergeDays(nil, []map[string]any{
		{"task": "no date"},
		day("2025-03-02"),
	})
	if len(merged) != 1 || merged[0].Date != "2025-03-02" {
		t.Fatalf("expected only the dated row, got %+v", merged)
	}
}

func TestMergeDaysUnparseableDateSortsFirst(t *testing.T) {
	existing := []DayEntry{{Date: "garbage", Task: "keep"}}
	merged := MergeDays(existing, []map[string]any{day("2025-03-01")})

	if len(merged) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(merged))
	}
	if merged[0].Date != "garbage" {
		t.Fatalf("expected unparseable date first, got %q", merged[0].Date)
	}
}

func TestMergeDaysNilBatch(t *testing.T) {
	existing := []DayEntry{{Date: "2025-03-01"}}
	merged := MergeDays(existing, nil)
	if len(merged) != 1 {
		t.Fatalf("expected existing entries untouched, got %d", len(merged))
	}
}

func TestNormalizeDayDropsUnknownKeys(t *testing.T) {
	raw := day("2025-03-01")
	raw["surprise"] = "value"
	entry := NormalizeDay(raw)

	encoded, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var round map[string]any
	if err := json.Unmarshal(encoded, &round); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if _, ok := round["surprise"]; ok {
		t.Fatal("unknown key survived normalization")
	}
}

func TestEmployeeYearJSONSentinel(t *testing.T) {
	record := EmployeeYear{
		Name: "Dana Levi",
		Months: map[string]MonthRecord{
			"2025-03": {HoursTable: HoursTable{Tax: map[string]any{"income_tax": "100"}}},
		},
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if _, ok := raw[NameKey]; !ok {
		t.Fatal("expected employee_name sentinel on the wire")
	}

	var decoded EmployeeYear
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if decoded.Name != "Dana Levi" {
		t.Fatalf("expected name to round trip, got %q", decoded.Name)
	}
	if _, ok := decoded.Months[NameKey]; ok {
		t.Fatal("sentinel leaked into month keys")
	}
	if _, ok := decoded.Months["2025-03"]; !ok {
		t.Fatal("month record lost in round trip")
	}
}

func TestMemStoreIsolatesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	saved := EmployeeYear{
		Name:   "Dana Levi",
		Months: map[string]MonthRecord{"2025-03": {}},
	}
	if err := store.SaveEmployee(ctx, 2025, "7", saved); err != nil {
		t.Fatalf("save error: %v", err)
	}

	loaded, found, err := store.LoadEmployee(ctx, 2025, "7")
	if err != nil || !found {
		t.Fatalf("expected record, found=%v err=%v", found, err)
	}
	loaded.Months["2025-04"] = MonthRecord{}

	again, _, err := store.LoadEmployee(ctx, 2025, "7")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if _, ok := again.Months["2025-04"]; ok {
		t.Fatal("mutating a loaded record leaked into the store")
	}

	_, found, err = store.LoadEmployee(ctx, 2024, "7")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if found {
		t.Fatal("expected missing year to read as absent")
	}
}
