// Package render turns history data into printable artifacts: the
// daily sales report and per-client tickets, as HTML, PDF, JPEG, and
// raw ESC/POS bytes for a thermal printer.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"ryusushi/pos/internal/aggregate"
	"ryusushi/pos/internal/domain"
)

type CategorySales struct {
	Label    string
	Quantity int
	Total    float64
}

type ExpenseRow struct {
	Time        string
	Description string
	Amount      float64
}

type ReportData struct {
	BusinessName  string
	Phone         string
	Address       string
	WorkerName    string
	CashInBox     float64
	Date          string
	Time          string
	TotalClients  int
	PromoCount    int
	GrandTotal    float64
	Categories    []CategorySales
	Expenses      []ExpenseRow
	TotalExpenses float64
	NetBalance    float64
}

// BuildReportData assembles the daily sales report from history lines,
// expenses, and the open-of-day register record. A missing register is
// fine: the contact fields just come up empty.
func BuildReportData(businessName, phone string, items []domain.LineItem, expenses []domain.Expense, register *domain.RegisterInfo, now time.Time) ReportData {
	data := ReportData{
		BusinessName: businessName,
		Phone:        phone,
		Date:         now.Format("02/01/2006"),
		Time:         now.Format("15:04:05"),
		TotalClients: len(aggregate.GroupByClient(items)),
		PromoCount:   aggregate.PromoCount(items),
		GrandTotal:   aggregate.GrandTotal(items),
	}
	if register != nil {
		data.Address = register.Address
		data.WorkerName = register.WorkerName
		data.CashInBox = register.CashInBox
	}

	totals := aggregate.ProductTotals(items)
	for _, cat := range []struct {
		label string
		key   string
	}{
		{"Sushi", domain.TypeSushi},
		{"Alitas", domain.TypeAlitas},
		{"Bebidas", domain.TypeBebida},
		{"Boneless", domain.TypeBoneless},
		{"Papas", domain.TypePapas},
	} {
		t := totals[cat.key]
		data.Categories = append(data.Categories, CategorySales{Label: cat.label, Quantity: t.Quantity, Total: t.Total})
	}

	for _, e := range expenses {
		data.Expenses = append(data.Expenses, ExpenseRow{
			Time:        e.CreatedAt.Format("15:04:05"),
			Description: e.Description,
			Amount:      e.Amount,
		})
		data.TotalExpenses += e.Amount
	}
	data.NetBalance = data.GrandTotal - data.TotalExpenses
	return data
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 1cm; }
  body { font-family: Arial, sans-serif; padding: 15px; line-height: 1.4; max-width: 21cm; margin: 0 auto; }
  .header { text-align: center; margin-bottom: 15px; border-bottom: 2px solid #333; padding-bottom: 10px; }
  .header h1 { font-size: 24px; color: #000; margin: 0 0 5px 0; }
  .section-title { font-size: 16px; font-weight: bold; margin: 15px 0 10px; background-color: #f5f5f5; padding: 8px; border-radius: 4px; }
  .content { font-size: 13px; margin-left: 10px; }
  .stats-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 15px; margin: 15px 0; }
  .stat-box { background-color: #f8f9fa; border: 1px solid #dee2e6; border-radius: 4px; padding: 10px; text-align: center; }
  .stat-value { font-size: 18px; font-weight: bold; color: #cc0000; }
  .stat-label { font-size: 12px; color: #666; }
  .sales-summary { display: grid; grid-template-columns: repeat(2, 1fr); gap: 10px; margin: 15px 0; }
  .sales-item { background-color: #f8f9fa; border: 1px solid #dee2e6; border-radius: 4px; padding: 10px; }
  .sales-item-title { color: #cc0000; font-weight: bold; margin-bottom: 5px; }
  .expenses-table { width: 100%; border-collapse: collapse; margin: 15px 0; font-size: 12px; }
  .expenses-table th, .expenses-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  .expenses-table th { background-color: #f5f5f5; font-weight: bold; }
  .total-section { margin-top: 20px; padding: 15px; background-color: #f8f9fa; border-radius: 4px; }
  .total-text { font-size: 14px; font-weight: bold; text-align: right; margin: 5px 0; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.BusinessName}}</h1>
    <p><strong>Reporte Detallado de Ventas</strong></p>
    <p><strong>Fecha:</strong> {{.Date}} <strong>Hora:</strong> {{.Time}}</p>
  </div>
  <div class="section-title">INFORMACIÓN DEL NEGOCIO</div>
  <div class="content">
    <p><strong>Dirección:</strong> {{if .Address}}{{.Address}}{{else}}No disponible{{end}}</p>
    <p><strong>Teléfono:</strong> {{.Phone}}</p>
    <p><strong>Trabajador:</strong> {{if .WorkerName}}{{.WorkerName}}{{else}}No disponible{{end}}</p>
    <p><strong>Cambio en caja:</strong> ${{printf "%.2f" .CashInBox}}</p>
  </div>
  <div class="section-title">RESUMEN DE VENTAS</div>
  <div class="stats-grid">
    <div class="stat-box"><div class="stat-value">{{.TotalClients}}</div><div class="stat-label">Total Clientes</div></div>
    <div class="stat-box"><div class="stat-value">{{.PromoCount}}</div><div class="stat-label">Promociones</div></div>
    <div class="stat-box"><div class="stat-value">${{printf "%.2f" .GrandTotal}}</div><div class="stat-label">Ventas Totales</div></div>
  </div>
  <div class="section-title">DETALLE DE PRODUCTOS VENDIDOS</div>
  <div class="sales-summary">
    {{range .Categories}}
    <div class="sales-item">
      <div class="sales-item-title">{{.Label}}</div>
      <p>Cantidad: {{.Quantity}} unidades</p>
      <p>Total: ${{printf "%.2f" .Total}}</p>
    </div>
    {{end}}
  </div>
  <div class="section-title">EGRESOS</div>
  <div class="content">
    <table class="expenses-table">
      <thead><tr><th>Hora</th><th>Descripción</th><th>Monto</th></tr></thead>
      <tbody>
        {{range .Expenses}}
        <tr><td>{{.Time}}</td><td>{{.Description}}</td><td>${{printf "%.2f" .Amount}}</td></tr>
        {{end}}
      </tbody>
      <tfoot>
        <tr><td colspan="2"><strong>Total Egresos:</strong></td><td><strong>${{printf "%.2f" .TotalExpenses}}</strong></td></tr>
      </tfoot>
    </table>
  </div>
  <div class="total-section">
    <p class="total-text">TOTAL VENTAS: ${{printf "%.2f" .GrandTotal}}</p>
    <p class="total-text">TOTAL EGRESOS: ${{printf "%.2f" .TotalExpenses}}</p>
    <p class="total-text">BALANCE NETO: ${{printf "%.2f" .NetBalance}}</p>
  </div>
</body>
</html>
`))

func ReportHTML(data ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type TicketLine struct {
	Name  string
	Price float64
	Promo bool
}

type TicketData struct {
	BusinessName string
	Phone        string
	Date         string
	ClientName   string
	Lines        []TicketLine
	Subtotal     float64
	Discount     float64
	Total        float64
}

func BuildTicketData(businessName, phone string, group aggregate.OrderGroup, now time.Time) TicketData {
	totals := aggregate.TotalsForTicket(group.Items)
	data := TicketData{
		BusinessName: businessName,
		Phone:        phone,
		Date:         now.Format("02/01/2006 15:04"),
		ClientName:   group.Name,
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Total:        totals.Total,
	}
	for _, it := range group.Items {
		data.Lines = append(data.Lines, TicketLine{Name: it.Name, Price: it.Price, Promo: it.IsPromotional})
	}
	return data
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Helvetica', sans-serif; width: 100%; max-width: 300px; margin: 0 auto; padding: 10px; }
  .header { font-size: 16px; font-weight: bold; text-align: center; margin-bottom: 10px; }
  .info { font-size: 12px; text-align: center; margin-bottom: 5px; }
  .divider { border-top: 1px dashed #000; margin: 8px 0; }
  .item { font-size: 12px; margin: 5px 0; display: flex; justify-content: space-between; }
  .total { font-size: 14px; font-weight: bold; text-align: right; margin: 5px 0; }
  .footer { font-size: 10px; margin-top: 15px; text-align: center; }
</style>
</head>
<body>
  <div class="header">{{.BusinessName}}</div>
  <div class="info">Tel: {{.Phone}}</div>
  <div class="info">Fecha: {{.Date}}</div>
  <div class="info">Cliente: {{.ClientName}}</div>
  <div class="divider"></div>
  {{range .Lines}}
  <div class="item"><span>{{.Name}}</span><span>{{if .Promo}}PROMO 3x2{{else}}${{printf "%.2f" .Price}}{{end}}</span></div>
  {{end}}
  <div class="divider"></div>
  <div class="total">Subtotal: ${{printf "%.2f" .Subtotal}}</div>
  {{if gt .Discount 0.0}}<div class="total">Descuento: ${{printf "%.2f" .Discount}}</div>{{end}}
  <div class="total">Total: ${{printf "%.2f" .Total}}</div>
  <div class="divider"></div>
  <div class="footer">¡Gracias por elegir Ryu Sushi!<br>¡Esperamos verte pronto!<br>Síguenos en redes sociales</div>
</body>
</html>
`))

func TicketHTML(data TicketData) (string, error) {
	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EscposTicket renders the ticket as raw printer bytes for the
// Bluetooth thermal printer bridge: init, the text lines, then a
// partial cut. Returned alongside are the preview lines.
func EscposTicket(data TicketData) (escposBase64 string, preview string) {
	lines := []string{
		data.BusinessName,
		"========================",
		"Tel: " + data.Phone,
		"Fecha: " + data.Date,
		"Cliente: " + data.ClientName,
		"------------------------",
	}
	for _, line := range data.Lines {
		price := fmt.Sprintf("$%.2f", line.Price)
		if line.Promo {
			price = "PROMO 3x2"
		}
		lines = append(lines, fmt.Sprintf("%s  %s", line.Name, price))
	}
	lines = append(lines,
		"------------------------",
		fmt.Sprintf("Subtotal : $%.2f", data.Subtotal),
	)
	if data.Discount > 0 {
		lines = append(lines, fmt.Sprintf("Descuento: $%.2f", data.Discount))
	}
	lines = append(lines,
		fmt.Sprintf("Total    : $%.2f", data.Total),
		"========================",
		"Gracias por su compra",
		"",
	)

	escpos := []byte{0x1b, 0x40}
	for _, line := range lines {
		escpos = append(escpos, []byte(line)...)
		escpos = append(escpos, '\n')
	}
	escpos = append(escpos, []byte{0x1d, 0x56, 0x41, 0x10}...)

	return base64.StdEncoding.EncodeToString(escpos), strings.Join(lines, "\n")
}
