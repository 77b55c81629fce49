package core

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// sequentialIDs returns an id generator yielding "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAggregate_SumsGroup(t *testing.T) {
	entries := []TimeEntry{
		{Project: "A", Description: "Fix bug", DurationDecimal: 1.5, BillableRate: 80, BillableAmount: 120},
		{Project: "A", Description: "Fix bug", DurationDecimal: 2, BillableRate: 100, BillableAmount: 200},
	}

	items := AggregateWith(entries, sequentialIDs())
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	item := items[0]
	if item.Quantity != 3.5 {
		t.Errorf("Quantity = %v, want 3.5", item.Quantity)
	}
	if item.Total != 320 {
		t.Errorf("Total = %v, want 320", item.Total)
	}
	if item.Rate != 80 {
		t.Errorf("Rate = %v, want first entry's 80", item.Rate)
	}
	if item.ID != "id-1" || item.Project != "A" || item.Description != "Fix bug" {
		t.Errorf("item = %+v", item)
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	entries := []TimeEntry{
		{Project: "B", Description: "x"},
		{Project: "A", Description: "y"},
		{Project: "B", Description: "x"},
		{Project: "C", Description: "z"},
		{Project: "A", Description: "y"},
	}

	items := AggregateWith(entries, sequentialIDs())

	var got []string
	for _, it := range items {
		got = append(got, it.Project)
	}
	want := []string{"B", "A", "C"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestAggregate_SeparatorDoesNotCollide(t *testing.T) {
	entries := []TimeEntry{
		{Project: "X", Description: "Y-Z", DurationDecimal: 1},
		{Project: "X-Y", Description: "Z", DurationDecimal: 2},
	}

	if items := Aggregate(entries); len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestAggregate_SameDescriptionDifferentProject(t *testing.T) {
	entries := []TimeEntry{
		{Project: "A", Description: "Meeting"},
		{Project: "B", Description: "Meeting"},
	}

	if items := Aggregate(entries); len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestAggregate_Empty(t *testing.T) {
	items := Aggregate(nil)
	if items == nil || len(items) != 0 {
		t.Errorf("Aggregate(nil) = %#v, want empty non-nil slice", items)
	}
}

func TestAggregate_UUIDs(t *testing.T) {
	entries := []TimeEntry{
		{Project: "A", Description: "1"},
		{Project: "A", Description: "2"},
	}

	items := Aggregate(entries)
	seen := make(map[string]bool)
	for _, it := range items {
		if _, err := uuid.Parse(it.ID); err != nil {
			t.Errorf("ID %q is not a UUID: %v", it.ID, err)
		}
		if seen[it.ID] {
			t.Errorf("duplicate ID %q", it.ID)
		}
		seen[it.ID] = true
	}
}
