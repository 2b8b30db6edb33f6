package lifecycle

import (
	"strings"

	"github.com/depomarket/retail-service/internal/domain"
)

// boilerplatePatterns are substrings that mark a note as system-generated
// status-change text rather than a human remark. Matching is a documented
// heuristic; the patterns are data so they can be tested and extended
// without touching call sites.
var boilerplatePatterns = []string{
	"durum güncellendi",
	"tarafından güncellendi",
	"status updated",
	"sipariş oluşturuldu",
	"kayıt oluşturuldu",
}

// IsBoilerplateNote reports whether the note looks auto-generated.
func IsBoilerplateNote(note string) bool {
	lowered := strings.ToLower(strings.TrimSpace(note))
	if lowered == "" {
		return true
	}
	for _, pattern := range boilerplatePatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// LatestMeaningfulNote returns the newest history note that is non-empty
// and not boilerplate, or "" when no entry qualifies. Several surfaces use
// this to decide whether to show an admin's remark or suppress generic
// system text.
func LatestMeaningfulNote(rec *domain.Record) string {
	for i := len(rec.StatusHistory) - 1; i >= 0; i-- {
		note := strings.TrimSpace(rec.StatusHistory[i].Note)
		if note != "" && !IsBoilerplateNote(note) {
			return note
		}
	}
	return ""
}
