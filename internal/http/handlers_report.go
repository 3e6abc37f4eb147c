package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"finlog/internal/chart"
	"finlog/internal/core"
)

// CategoryRow is one category line on the report page.
type CategoryRow struct {
	Name    string
	Amount  string
	Share   int // percentage of the positive whole, 0 for non-positive rows
	InChart bool
}

// ReportViewModel is the data passed to the report template.
type ReportViewModel struct {
	Title      string
	Username   string
	Total      string
	Categories []CategoryRow
	HasChart   bool
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	records, err := s.records.ListRecordsByUser(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report load failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	summary := core.Summarize(records)

	vm := ReportViewModel{
		Title:      "Report",
		Username:   user.Username,
		Total:      summary.Total.String(),
		Categories: make([]CategoryRow, 0, len(summary.ByCategory)),
	}
	for _, ca := range summary.ByCategory {
		positive := ca.Amount.Cents > 0
		vm.Categories = append(vm.Categories, CategoryRow{
			Name:    ca.Name,
			Amount:  ca.Amount.String(),
			Share:   summary.PositiveShare(ca.Amount.Cents),
			InChart: positive,
		})
		if positive {
			vm.HasChart = true
		}
	}

	s.render(w, http.StatusOK, "report.html", vm)
}

// handleReportImage renders the category pie chart as a PNG. The chart is
// recomputed from live records on every request.
func (s *Server) handleReportImage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	records, err := s.records.ListRecordsByUser(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report image load failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	summary := core.Summarize(records)

	var buf bytes.Buffer
	if err := chart.RenderPie(&buf, summary.ByCategory); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			http.Error(w, "No spending to chart", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Chart rendering failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
