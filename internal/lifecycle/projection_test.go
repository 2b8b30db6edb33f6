package lifecycle

import (
	"testing"

	"github.com/depomarket/retail-service/internal/domain"
)

func sampleOrders() []domain.Record {
	statuses := []domain.Status{
		domain.OrderPaymentPending,
		domain.OrderProcessing,
		domain.OrderPaymentPending,
		domain.OrderDelivered,
		domain.OrderCancelled,
		domain.OrderProcessing,
		domain.OrderInTransit,
	}
	records := make([]domain.Record, 0, len(statuses))
	for i, s := range statuses {
		records = append(records, domain.Record{
			ID:     string(rune('a' + i)),
			Kind:   domain.KindOrder,
			Status: s,
		})
	}
	return records
}

func TestProjectCountsSumToTotal(t *testing.T) {
	records := sampleOrders()
	counts := ProjectCounts(domain.KindOrder, records)

	if counts[StateAll] != len(records) {
		t.Fatalf("all = %d, want %d", counts[StateAll], len(records))
	}
	sum := 0
	for key, n := range counts {
		if key == StateAll {
			continue
		}
		sum += n
	}
	if sum != len(records) {
		t.Fatalf("state counts sum to %d, want %d", sum, len(records))
	}

	// Every state of the kind is present, zero or not.
	for _, status := range domain.StatusesFor(domain.KindOrder) {
		if _, ok := counts[string(status)]; !ok {
			t.Fatalf("missing count for %s", status)
		}
	}
	if counts[string(domain.OrderReceived)] != 0 {
		t.Fatalf("order_received count = %d, want 0", counts[string(domain.OrderReceived)])
	}
}

func TestFilterMatchesCounts(t *testing.T) {
	records := sampleOrders()
	counts := ProjectCounts(domain.KindOrder, records)

	for _, status := range domain.StatusesFor(domain.KindOrder) {
		filtered := FilterByState(records, string(status))
		if len(filtered) != counts[string(status)] {
			t.Fatalf("filter(%s) = %d records, counts say %d", status, len(filtered), counts[string(status)])
		}
	}
	if got := len(FilterByState(records, StateAll)); got != len(records) {
		t.Fatalf("filter(all) = %d, want %d", got, len(records))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	records := sampleOrders()
	filtered := FilterByState(records, string(domain.OrderProcessing))
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(filtered))
	}
	if filtered[0].ID != "b" || filtered[1].ID != "f" {
		t.Fatalf("filter reordered records: %s, %s", filtered[0].ID, filtered[1].ID)
	}
}

func TestProjectCountsEmptyInput(t *testing.T) {
	counts := ProjectCounts(domain.KindMovingRequest, nil)
	if counts[StateAll] != 0 {
		t.Fatalf("all = %d, want 0", counts[StateAll])
	}
	if len(counts) != len(domain.StatusesFor(domain.KindMovingRequest))+1 {
		t.Fatalf("count keys = %d", len(counts))
	}
}
