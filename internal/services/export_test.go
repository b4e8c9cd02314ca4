package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"monedero/internal/core"
)

func TestFilterByRange(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a", Date: day(2025, 1, 1)},
		{ID: "b", Date: day(2025, 1, 15)},
		{ID: "c", Date: day(2025, 2, 1)},
	}
	start := day(2025, 1, 1)
	end := day(2025, 1, 31)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  []string
	}{
		{"both bounds inclusive", &start, &end, []string{"a", "b"}},
		{"open start", nil, &end, []string{"a", "b"}},
		{"open end", &start, nil, []string{"a", "b", "c"}},
		{"no bounds", nil, nil, []string{"a", "b", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterByRange(txs, tc.start, tc.end)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("record %d: got %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterByRangeBoundaryDatesIncluded(t *testing.T) {
	start := day(2025, 1, 1)
	end := day(2025, 1, 31)
	txs := []core.Transaction{
		{ID: "on-start", Date: start},
		{ID: "on-end", Date: end},
	}
	got := FilterByRange(txs, &start, &end)
	if len(got) != 2 {
		t.Fatalf("boundary dates must be included, got %d", len(got))
	}
}

func TestWriteCSV(t *testing.T) {
	txs := []core.Transaction{
		{
			Description: "Café", Amount: core.Money{Cents: 350},
			Date: day(2025, 1, 10), Type: core.TypeExpense,
			Category: "Otros", PaymentMethod: "Efectivo", Currency: "PEN",
		},
		{
			Description: "Salario", Amount: core.Money{Cents: 250000},
			Date: day(2025, 1, 1), Type: core.TypeIncome,
			Category: "Otros", PaymentMethod: "Transferencia",
		},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs, "EUR"); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Fecha,Descripcion,Monto,Tipo,Categoria,Metodo_Pago,Moneda" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "10/01/2025,Café,3.50,Gasto,Otros,Efectivo,PEN" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	// A record without its own currency falls back to the session currency.
	if lines[2] != "01/01/2025,Salario,2500.00,Ingreso,Otros,Transferencia,EUR" {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	txs := []core.Transaction{
		{
			Description: "Almuerzo", Amount: core.Money{Cents: 1575},
			Date: day(2025, 1, 2), Type: core.TypeExpense,
			Category: "Otros", PaymentMethod: "Interbank", Currency: "EUR",
		},
	}
	start := day(2025, 1, 1)
	var buf bytes.Buffer
	if err := WritePDF(&buf, txs, &start, nil, "EUR"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:8])
	}
}

func TestExportFileName(t *testing.T) {
	start := day(2025, 1, 1)
	end := day(2025, 1, 31)
	if got := ExportFileName("csv", &start, &end); got != "registros_gastos_01-01-2025_31-01-2025.csv" {
		t.Fatalf("name = %q", got)
	}
	if got := ExportFileName("pdf", nil, nil); got != "registros_gastos_inicio_fin.pdf" {
		t.Fatalf("open range name = %q", got)
	}
}
