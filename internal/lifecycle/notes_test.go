package lifecycle

import (
	"testing"
	"time"

	"github.com/depomarket/retail-service/internal/domain"
)

func TestIsBoilerplateNote(t *testing.T) {
	cases := []struct {
		note string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"Durum güncellendi", true},
		{"Admin tarafından güncellendi", true},
		{"Sipariş oluşturuldu", true},
		{"Kargo yarın teslim edilecek", false},
		{"customer asked for refund", false},
	}
	for _, tc := range cases {
		if got := IsBoilerplateNote(tc.note); got != tc.want {
			t.Errorf("IsBoilerplateNote(%q) = %v, want %v", tc.note, got, tc.want)
		}
	}
}

func TestLatestMeaningfulNote(t *testing.T) {
	rec := &domain.Record{Kind: domain.KindOrder, Status: domain.OrderProcessing}
	at := time.Now()
	rec.StatusHistory = []domain.HistoryEntry{
		{NewStatus: domain.OrderPaymentPending, Note: "Sipariş oluşturuldu", ChangedAt: at},
		{NewStatus: domain.OrderReceived, Note: "Ödeme onaylandı, hazırlanıyor", ChangedAt: at},
		{NewStatus: domain.OrderProcessing, Note: "Durum güncellendi", ChangedAt: at},
	}

	if got := LatestMeaningfulNote(rec); got != "Ödeme onaylandı, hazırlanıyor" {
		t.Fatalf("LatestMeaningfulNote = %q", got)
	}
}

func TestLatestMeaningfulNoteNoneQualifies(t *testing.T) {
	rec := &domain.Record{Kind: domain.KindSellRequest, Status: domain.SellReviewing}
	rec.StatusHistory = []domain.HistoryEntry{
		{NewStatus: domain.SellReviewing, Note: ""},
		{NewStatus: domain.SellReviewing, Note: "Durum güncellendi"},
	}
	if got := LatestMeaningfulNote(rec); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
