// Package receipt renders the printable documents: the 80mm thermal sale
// receipt and the cash register close report. The client opens the document
// and triggers the platform print dialog; none of that happens here.
package receipt

import (
	"html/template"
	"strings"
	ttmpl "text/template"
	"time"

	"github.com/pastelneto/pdv-backend/internal/cash"
	"github.com/pastelneto/pdv-backend/internal/checkout"
	"github.com/pastelneto/pdv-backend/internal/order"
)

const storeName = "PASTEL NETO"

type Item struct {
	Quantity int
	Name     string
	Total    string
}

// Data is the structured receipt payload for one settled order.
type Data struct {
	Store       string
	OrderNumber string
	IssuedAt    time.Time
	Items       []Item
	Total       string
	Method      string
	AmountPaid  string
	ChangeDue   string
	// Cash controls whether the tendered/change block is printed.
	Cash bool
}

// Build assembles the receipt payload from a settled order.
func Build(o *order.Order, lines []order.Line, issuedAt time.Time) Data {
	d := Data{
		Store:       storeName,
		OrderNumber: o.OrderNumber,
		IssuedAt:    issuedAt,
		Total:       o.Total,
	}
	for _, l := range lines {
		d.Items = append(d.Items, Item{Quantity: l.Quantity, Name: l.Name, Total: l.TotalPrice})
	}
	if o.PaymentMethod != nil {
		d.Method = strings.ToUpper(*o.PaymentMethod)
		d.Cash = *o.PaymentMethod == string(checkout.MethodCash)
	}
	if o.AmountPaid != nil {
		d.AmountPaid = *o.AmountPaid
	}
	if o.ChangeAmount != nil {
		d.ChangeDue = *o.ChangeAmount
	}
	return d
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"ptbr": func(t time.Time) string { return t.Format("02/01/2006 15:04:05") },
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>Comprovante - {{.OrderNumber}}</title>
    <style>
      @media print {
        @page { size: 80mm auto; margin: 0; }
        body { width: 80mm; }
      }
      .thermal-receipt {
        width: 80mm;
        font-family: 'Courier New', monospace;
        font-size: 12px;
        line-height: 1.2;
        padding: 10px;
      }
      .center { text-align: center; }
      .bold { font-weight: bold; }
      .separator { border-top: 1px dashed #000; margin: 10px 0; }
      .item-line { display: flex; justify-content: space-between; }
    </style>
  </head>
  <body class="thermal-receipt">
    <div class="center bold">
      {{.Store}}<br>
      COMPROVANTE DE VENDA
    </div>
    <div class="separator"></div>
    <div>
      <strong>Pedido:</strong> {{.OrderNumber}}<br>
      <strong>Data:</strong> {{ptbr .IssuedAt}}<br>
    </div>
    <div class="separator"></div>
    {{range .Items}}<div class="item-line">
      <span>{{.Quantity}}x {{.Name}}</span>
      <span>R$ {{.Total}}</span>
    </div>
    {{end}}<div class="separator"></div>
    <div class="item-line bold">
      <span>TOTAL:</span>
      <span>R$ {{.Total}}</span>
    </div>
    <div>
      <strong>Pagamento:</strong> {{.Method}}<br>
      {{if .Cash}}<strong>Valor Pago:</strong> R$ {{.AmountPaid}}<br>
      <strong>Troco:</strong> R$ {{.ChangeDue}}<br>
      {{end}}</div>
    <div class="separator"></div>
    <div class="center">
      Obrigado pela preferência!<br>
      Volte sempre!
    </div>
    <script>
      window.onload = function() {
        window.print();
        setTimeout(() => window.close(), 1000);
      }
    </script>
  </body>
</html>
`))

// RenderHTML produces the thermal receipt document.
func RenderHTML(d Data) (string, error) {
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

var closeTmpl = ttmpl.Must(ttmpl.New("close").Funcs(ttmpl.FuncMap{
	"ptbr":  func(t time.Time) string { return t.Format("02/01/2006 15:04:05") },
	"upper": strings.ToUpper,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).Parse(`{{.Store}} - FECHAMENTO DE CAIXA
{{ptbr .ClosedAt}}
================================

TOTAL EM CAIXA: R$ {{.Balance}}

MOVIMENTAÇÕES DO DIA:
{{range .Movements}}{{upper (printf "%s" .Type)}}: R$ {{.Amount}} - {{deref .Description}}
{{end}}
================================
Sistema PDV - {{.Store}}
`))

type CloseReport struct {
	Store     string
	ClosedAt  time.Time
	Balance   string
	Movements []cash.Movement
}

// RenderCloseReport produces the plain-text register close report.
func RenderCloseReport(summary cash.Summary, closedAt time.Time) (string, error) {
	var b strings.Builder
	err := closeTmpl.Execute(&b, CloseReport{
		Store:     storeName,
		ClosedAt:  closedAt,
		Balance:   summary.Balance,
		Movements: summary.Movements,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
