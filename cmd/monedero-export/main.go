package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"monedero/internal/config"
	"monedero/internal/core"
	applog "monedero/internal/log"
	"monedero/internal/services"
	"monedero/internal/session"
	"monedero/internal/storage"
)

func parseBound(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", raw)
	}
	return &t, nil
}

func writeTable(w io.Writer, transactions []core.Transaction, sessionCurrency string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Fecha", "Descripcion", "Monto", "Tipo", "Categoria", "Metodo de Pago"})
	table.SetBorder(false)
	for _, t := range transactions {
		currency := t.Currency
		if currency == "" {
			currency = sessionCurrency
		}
		label := "Ingreso"
		if t.Type == core.TypeExpense {
			label = "Gasto"
		}
		table.Append([]string{
			t.Date.Format("02/01/2006"),
			t.Description,
			core.FormatAmount(t.Amount, currency),
			label,
			t.Category,
			t.PaymentMethod,
		})
	}
	table.Render()
}

func run() error {
	_ = godotenv.Load()

	var (
		user   = flag.String("user", "admin", "user whose records to export")
		dbPath = flag.String("db", "./data/monedero.db", "path to the SQLite database")
		start  = flag.String("start", "", "inclusive range start (YYYY-MM-DD)")
		end    = flag.String("end", "", "inclusive range end (YYYY-MM-DD)")
		format = flag.String("format", "table", "output format: csv, pdf or table")
		out    = flag.String("out", "", "output file (default: stdout, or the suggested name for pdf)")
	)
	flag.Parse()

	startBound, err := parseBound(*start)
	if err != nil {
		return err
	}
	endBound, err := parseBound(*end)
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStore(*dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	sess, err := session.Open(store, *user, config.Load().DefaultCurrency)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	filtered := services.FilterByRange(sess.Transactions(), startBound, endBound)

	dest := os.Stdout
	target := *out
	if target == "" && *format == "pdf" {
		target = services.ExportFileName("pdf", startBound, endBound)
	}
	if target != "" {
		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	switch *format {
	case "csv":
		if err := services.WriteCSV(dest, filtered, sess.Currency()); err != nil {
			return err
		}
	case "pdf":
		if err := services.WritePDF(dest, filtered, startBound, endBound, sess.Currency()); err != nil {
			return err
		}
	case "table":
		writeTable(dest, filtered, sess.Currency())
	default:
		return fmt.Errorf("unknown format %q: use csv, pdf or table", *format)
	}

	if target != "" {
		slog.Info("Export written", "file", target, "records", len(filtered))
	}
	return nil
}

func main() {
	applog.SetDefault(applog.New(applog.Config{Level: slog.LevelInfo, Component: "monedero-export"}))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
