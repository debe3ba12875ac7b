package render

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"ryusushi/pos/internal/aggregate"
	"ryusushi/pos/internal/domain"
)

func sampleGroup() aggregate.OrderGroup {
	return aggregate.OrderGroup{
		ClientID: "c1",
		Name:     "Ana",
		Items: []domain.LineItem{
			{Type: domain.TypeSushi, Name: "Torrelo (Natural)", Price: 100, ClientID: "c1"},
			{Type: domain.TypeSushi, Name: "Vegetariano (Natural)", Price: 0, OriginalPrice: 95, IsPromotional: true, ClientID: "c1"},
		},
		Total: 100,
	}
}

func TestBuildReportDataNetBalance(t *testing.T) {
	items := []domain.LineItem{
		{Type: domain.TypeSushi, Name: "Torrelo (Natural)", Price: 100, ClientID: "c1", ClientName: "Ana"},
		{Type: domain.TypeBebida, Name: "Sprite", Price: 25, ClientID: "c2", ClientName: "Beto"},
	}
	expenses := []domain.Expense{
		{ID: "exp-1", Description: "Gas", Amount: 40, CreatedAt: time.Now()},
	}
	register := &domain.RegisterInfo{CashInBox: 500, WorkerName: "Luz", Address: "Centro"}

	data := BuildReportData("RYU SUSHI", "6181268154", items, expenses, register, time.Now())
	if data.TotalClients != 2 {
		t.Fatalf("expected 2 clients, got %d", data.TotalClients)
	}
	if data.GrandTotal != 125 {
		t.Fatalf("expected grand total 125, got %v", data.GrandTotal)
	}
	if data.TotalExpenses != 40 {
		t.Fatalf("expected expenses 40, got %v", data.TotalExpenses)
	}
	if data.NetBalance != 85 {
		t.Fatalf("expected net balance 85, got %v", data.NetBalance)
	}
	if data.WorkerName != "Luz" || data.CashInBox != 500 {
		t.Fatalf("expected register fields carried over, got %+v", data)
	}
	if len(data.Categories) != 5 {
		t.Fatalf("expected 5 category rows, got %d", len(data.Categories))
	}
}

func TestReportHTMLRendersSections(t *testing.T) {
	data := BuildReportData("RYU SUSHI", "6181268154", nil, nil, nil, time.Now())
	html, err := ReportHTML(data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"RYU SUSHI", "INFORMACIÓN DEL NEGOCIO", "EGRESOS", "BALANCE NETO", "No disponible"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected report to contain %q", want)
		}
	}
}

func TestTicketHTMLShowsPromoAndDiscount(t *testing.T) {
	data := BuildTicketData("RYU SUSHI", "6181268154", sampleGroup(), time.Now())
	if data.Subtotal != 195 || data.Discount != 95 || data.Total != 100 {
		t.Fatalf("unexpected totals: %+v", data)
	}

	html, err := TicketHTML(data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"PROMO 3x2", "Descuento: $95.00", "Total: $100.00", "Cliente: Ana"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected ticket to contain %q", want)
		}
	}
}

func TestTicketHTMLHidesZeroDiscount(t *testing.T) {
	group := aggregate.OrderGroup{
		ClientID: "c1",
		Name:     "Ana",
		Items:    []domain.LineItem{{Type: domain.TypePapas, Name: "Papas", Price: 50, ClientID: "c1"}},
		Total:    50,
	}
	html, err := TicketHTML(BuildTicketData("RYU SUSHI", "6181268154", group, time.Now()))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "Descuento") {
		t.Fatalf("expected no discount line for a promo-free order")
	}
}

func TestEscposTicketFramesPayload(t *testing.T) {
	encoded, preview := EscposTicket(BuildTicketData("RYU SUSHI", "6181268154", sampleGroup(), time.Now()))

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if len(raw) < 6 || raw[0] != 0x1b || raw[1] != 0x40 {
		t.Fatalf("expected ESC @ initialization, got % x", raw[:2])
	}
	tail := raw[len(raw)-4:]
	if tail[0] != 0x1d || tail[1] != 0x56 || tail[2] != 0x41 {
		t.Fatalf("expected partial cut trailer, got % x", tail)
	}
	if !strings.Contains(preview, "Cliente: Ana") || !strings.Contains(preview, "PROMO 3x2") {
		t.Fatalf("unexpected preview: %q", preview)
	}
}
