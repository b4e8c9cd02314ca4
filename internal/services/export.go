package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"monedero/internal/core"
)

// csvHeader matches the historical export layout; Moneda is always present
// because the defaulting rules guarantee a currency on every record.
var csvHeader = []string{"Fecha", "Descripcion", "Monto", "Tipo", "Categoria", "Metodo_Pago", "Moneda"}

// FilterByRange selects the transactions whose date falls inside the
// optional inclusive bounds. A nil bound is open: with both bounds nil the
// input is returned as a copy in its original order. No sorting, no
// deduplication.
func FilterByRange(transactions []core.Transaction, start, end *time.Time) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if start != nil && t.Date.Before(*start) {
			continue
		}
		if end != nil && t.Date.After(*end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func typeLabel(t core.TransactionType) string {
	if t == core.TypeExpense {
		return "Gasto"
	}
	return "Ingreso"
}

func exportDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// rangeLabel renders an optional bound for the PDF period header and the
// suggested file names.
func rangeLabel(t *time.Time, open string) string {
	if t == nil {
		return open
	}
	return exportDate(*t)
}

// WriteCSV writes the transactions as a CSV report: one row per record,
// dd/mm/yyyy dates, localized type labels and the raw decimal amount. The
// caller decides which records to include (usually via FilterByRange).
func WriteCSV(w io.Writer, transactions []core.Transaction, sessionCurrency string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		currency := t.Currency
		if currency == "" {
			currency = sessionCurrency
		}
		row := []string{
			exportDate(t.Date),
			t.Description,
			t.Amount.DecimalString(),
			typeLabel(t.Type),
			t.Category,
			t.PaymentMethod,
			currency,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePDF writes the transactions as a tabular PDF report with a header
// showing the selected date range. Amounts are display-formatted in each
// record's own currency.
func WritePDF(w io.Writer, transactions []core.Transaction, start, end *time.Time, sessionCurrency string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Reporte de Gastos e Ingresos"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	period := fmt.Sprintf("Período: %s - %s", rangeLabel(start, "Inicio"), rangeLabel(end, "Fin"))
	pdf.Cell(0, 6, tr(period))
	pdf.Ln(10)

	headers := []string{"Fecha", "Descripción", "Tipo", "Categoría", "Método de Pago", "Monto"}
	widths := []float64{22, 58, 20, 28, 32, 30}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(22, 160, 133)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, t := range transactions {
		currency := t.Currency
		if currency == "" {
			currency = sessionCurrency
		}
		pdf.SetFillColor(245, 245, 245)
		cells := []string{
			exportDate(t.Date),
			t.Description,
			typeLabel(t.Type),
			t.Category,
			t.PaymentMethod,
			core.FormatAmount(t.Amount, currency),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// ExportFileName builds the suggested download name for an export, keeping
// the historical registros_gastos_<start>_<end> pattern. Slashes in the
// range labels are not filesystem friendly, so dates use dashes here.
func ExportFileName(ext string, start, end *time.Time) string {
	from := "inicio"
	if start != nil {
		from = start.Format("02-01-2006")
	}
	to := "fin"
	if end != nil {
		to = end.Format("02-01-2006")
	}
	return fmt.Sprintf("registros_gastos_%s_%s.%s", from, to, ext)
}
