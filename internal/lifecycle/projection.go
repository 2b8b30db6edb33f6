package lifecycle

import "github.com/depomarket/retail-service/internal/domain"

// StateAll is the pseudo-state accepted by FilterByState to mean "no
// filter"; ProjectCounts reports the total under the same key.
const StateAll = "all"

// ProjectCounts computes per-state counts over a snapshot of records of one
// kind, plus the total under "all". Every state of the kind is present in
// the result even at zero. Always recomputed; never cached.
func ProjectCounts(kind domain.RecordKind, records []domain.Record) map[string]int {
	counts := make(map[string]int, len(domain.StatusesFor(kind))+1)
	for _, status := range domain.StatusesFor(kind) {
		counts[string(status)] = 0
	}
	for _, rec := range records {
		counts[string(rec.Status)]++
	}
	counts[StateAll] = len(records)
	return counts
}

// FilterByState returns the records whose status matches state, preserving
// the input order. state == "all" returns a copy of the whole slice.
func FilterByState(records []domain.Record, state string) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	if state == StateAll {
		return append(out, records...)
	}
	for _, rec := range records {
		if string(rec.Status) == state {
			out = append(out, rec)
		}
	}
	return out
}
