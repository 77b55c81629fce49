package core

import "github.com/google/uuid"

// groupKey identifies a line item. A struct key keeps ("X", "Y-Z") and
// ("X-Y", "Z") apart.
type groupKey struct {
	project     string
	description string
}

// Aggregate groups entries into invoice line items by project and
// description.
//
// Items appear in the order their group was first seen. Quantity and Total
// are sums of the group's DurationDecimal and BillableAmount; Rate is the
// first entry's BillableRate and is never updated. Each item gets a random
// UUID.
func Aggregate(entries []TimeEntry) []AggregatedItem {
	return AggregateWith(entries, uuid.NewString)
}

// AggregateWith is Aggregate with a caller-supplied id generator.
func AggregateWith(entries []TimeEntry, newID func() string) []AggregatedItem {
	items := make([]AggregatedItem, 0)
	positions := make(map[groupKey]int)

	for _, e := range entries {
		key := groupKey{project: e.Project, description: e.Description}

		pos, ok := positions[key]
		if !ok {
			pos = len(items)
			positions[key] = pos
			items = append(items, AggregatedItem{
				ID:          newID(),
				Description: e.Description,
				Project:     e.Project,
				Rate:        e.BillableRate,
			})
		}

		items[pos].Quantity += e.DurationDecimal
		items[pos].Total += e.BillableAmount
	}

	return items
}
