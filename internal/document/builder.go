package document

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/NourJadiri/invox-app/internal/config"
)

type invoiceView struct {
	CSS          template.CSS
	Issuer       config.PartyConfig
	BillTo       config.PartyConfig
	Service      string
	VATNote      string
	Date         string
	Number       string
	PeriodStart  string
	PeriodEnd    string
	GrandTotal   string
	StudentCount int
	StudentLabel string
	Chips        []chipView
	Groups       []groupView
}

type chipView struct {
	Name  string
	Total string
}

type groupView struct {
	Name          string
	FirstName     string
	Rows          []rowView
	SubtotalHours string
	Subtotal      string
}

type rowView struct {
	Date  string
	Title string
	Hours string
	Rate  string
	Total string
}

// BuildHTML renders a computed invoice document into the printable HTML the
// PDF renderer consumes. All numeric values come straight from the document,
// so the HTML and any JSON preview of the same document always agree.
func BuildHTML(doc Document, cfg config.InvoiceConfig) (string, error) {
	view := invoiceView{
		CSS:          template.CSS(invoiceCSS),
		Issuer:       cfg.Issuer,
		BillTo:       cfg.BillTo,
		Service:      cfg.Service,
		VATNote:      cfg.VATNote,
		Date:         formatDateLongFR(doc.Date),
		Number:       "—",
		PeriodStart:  formatDateShortFR(doc.StartDate),
		PeriodEnd:    formatDateShortFR(doc.EndDate),
		GrandTotal:   formatEuro(doc.GrandTotal),
		StudentCount: len(doc.Groups),
		StudentLabel: "élèves",
	}

	if doc.Number > 0 {
		view.Number = fmt.Sprintf("%d", doc.Number)
	}
	if len(doc.Groups) == 1 {
		view.StudentLabel = "élève"
	}

	for _, group := range doc.Groups {
		view.Chips = append(view.Chips, chipView{
			Name:  group.Student.FullName(),
			Total: formatEuro(group.Total),
		})

		gv := groupView{
			Name:          group.Student.FullName(),
			FirstName:     group.Student.FirstName,
			SubtotalHours: formatHours(group.TotalHours),
			Subtotal:      formatEuro(group.Total),
		}

		for _, line := range group.Lines {
			title := "Leçon"
			if line.Lesson.Title != nil && *line.Lesson.Title != "" {
				title = *line.Lesson.Title
			}

			gv.Rows = append(gv.Rows, rowView{
				Date:  formatDateTimeFR(line.Lesson.Start),
				Title: title,
				Hours: formatHours(line.Hours),
				Rate:  formatEuroOrDash(line.HourlyRate),
				Total: formatEuroOrDash(line.Total),
			})
		}

		view.Groups = append(view.Groups, gv)
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}

	return buf.String(), nil
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="fr">
  <head>
    <meta charset="utf-8" />
    <title>Facture</title>
    <style>{{.CSS}}</style>
  </head>
  <body>
    <div class="invoice">
      <div class="header">
        <div class="header-left">
          <div class="issuer-name">{{.Issuer.Name}}</div>
          <div class="issuer-line">Siret : {{.Issuer.Siret}}</div>
          <div class="issuer-line">Adresse postale : {{.Issuer.Address}}</div>
          <div class="issuer-line">Code postal, Ville : {{.Issuer.City}}</div>
          <div class="issuer-line">Téléphone : {{.Issuer.Phone}}</div>
        </div>
        <div class="header-right">
          <div>
            <div class="section-label">Détails de la facture</div>
            <div class="meta-row">
              <div>
                <div class="meta-value">DATE : {{.Date}}</div>
              </div>
              <div>
                <div class="meta-value">N° FACTURE {{.Number}}</div>
              </div>
            </div>
            <div class="meta-value">POUR : {{.Service}}</div>
            <div class="meta-value" style="margin-top: 4px; font-size: 10px; color: #6b7280;">{{.VATNote}}</div>
          </div>
          <div>
            <div class="section-label">FACTURER À</div>
            <div class="meta-value">Nom : {{.BillTo.Name}}</div>
            <div class="meta-value">Nom société : {{.BillTo.Company}}</div>
            <div class="meta-value">Adresse postale : {{.BillTo.Address}}</div>
            <div class="meta-value">Code postal, Ville : {{.BillTo.City}}</div>
            <div class="meta-value">Téléphone : {{.BillTo.Phone}}</div>
          </div>
        </div>
      </div>

      <div class="invoice-title-row">
        <div>
          <div class="title">Facture</div>
          <div class="subtitle">Leçons du {{.PeriodStart}} au {{.PeriodEnd}}</div>
        </div>
        <div style="text-align: right;">
          <div class="total-label">Total dû</div>
          <div class="total-value">{{.GrandTotal}}</div>
          <div class="badge">{{.StudentCount}} {{.StudentLabel}}</div>
        </div>
      </div>

      <div class="summary">
        <div class="summary-title">Récapitulatif par élève</div>
        <div class="chips">
          {{- range .Chips}}
          <div class="chip">
            <span>{{.Name}}</span>
            <span class="chip-amount">{{.Total}}</span>
          </div>
          {{- end}}
        </div>
      </div>

      <div class="content">
        <table>
          <thead>
            <tr>
              <th style="width: 120px;">Date</th>
              <th>Intitulé</th>
              <th style="width: 80px; text-align: right;">Heures</th>
              <th style="width: 120px; text-align: right;">Taux horaire</th>
              <th style="width: 120px; text-align: right;">Total</th>
            </tr>
          </thead>
          <tbody>
            {{- range .Groups}}
            <tr class="student-header">
              <td colspan="5" class="student-name">{{.Name}}</td>
            </tr>
            {{- range .Rows}}
            <tr>
              <td class="cell date" style="padding-left: 16px;">{{.Date}}</td>
              <td class="cell title">{{.Title}}</td>
              <td class="cell amount" style="text-align: right;">{{.Hours}}</td>
              <td class="cell amount" style="text-align: right;">{{.Rate}}</td>
              <td class="cell amount" style="text-align: right;">{{.Total}}</td>
            </tr>
            {{- end}}
            <tr class="student-subtotal">
              <td colspan="2" class="cell" style="text-align: right; font-weight: 500; color: #6b7280;">Sous-total pour {{.FirstName}}</td>
              <td class="cell amount" style="text-align: right; font-weight: 500; color: #6b7280;">{{.SubtotalHours}}</td>
              <td class="cell"></td>
              <td class="cell amount" style="text-align: right; font-weight: 600;">{{.Subtotal}}</td>
            </tr>
            {{- end}}
          </tbody>
          <tfoot>
            <tr>
              <td colspan="4" class="label">Total dû</td>
              <td class="value">{{.GrandTotal}}</td>
            </tr>
          </tfoot>
        </table>
      </div>
    </div>
  </body>
</html>
`))
