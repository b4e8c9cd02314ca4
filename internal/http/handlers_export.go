package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"monedero/internal/services"
)

// parseRangeParams reads the optional start/end query parameters. Both are
// inclusive; a missing parameter leaves that side of the range open.
func parseRangeParams(r *http.Request) (start, end *time.Time, err error) {
	if raw := strings.TrimSpace(r.URL.Query().Get("start")); raw != "" {
		t, perr := parseDate(raw)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("end")); raw != "" {
		t, perr := parseDate(raw)
		if perr != nil {
			return nil, nil, perr
		}
		end = &t
	}
	return start, end, nil
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	start, end, err := parseRangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}
	sess := tracker.Session()
	filtered := services.FilterByRange(sess.Transactions(), start, end)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+services.ExportFileName("csv", start, end)+`"`)
	if err := services.WriteCSV(w, filtered, sess.Currency()); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	start, end, err := parseRangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}
	sess := tracker.Session()
	filtered := services.FilterByRange(sess.Transactions(), start, end)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+services.ExportFileName("pdf", start, end)+`"`)
	if err := services.WritePDF(w, filtered, start, end, sess.Currency()); err != nil {
		slog.ErrorContext(r.Context(), "PDF export failed", "error", err)
	}
}
