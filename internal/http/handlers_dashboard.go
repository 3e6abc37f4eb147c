package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finlog/internal/core"
)

// RecordItem represents one record in the dashboard list.
type RecordItem struct {
	Amount      string
	Description string
	Category    string
	When        string
	IsIncome    bool
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Title    string
	Username string
	Total    string
	Records  []RecordItem
	Error    string
	Amount   string
	Category string
}

func (s *Server) dashboardViewModel(r *http.Request, user core.User) (DashboardViewModel, error) {
	records, err := s.records.ListRecordsByUser(r.Context(), user.ID)
	if err != nil {
		return DashboardViewModel{}, err
	}

	summary := core.Summarize(records)

	vm := DashboardViewModel{
		Title:    "Dashboard",
		Username: user.Username,
		Total:    summary.Total.String(),
		Records:  make([]RecordItem, 0, len(records)),
	}
	for _, rec := range records {
		vm.Records = append(vm.Records, RecordItem{
			Amount:      rec.Amount.String(),
			Description: rec.Description,
			Category:    rec.Category,
			When:        rec.CreatedAt.Local().Format("Mon, 02 Jan 2006 15:04"),
			IsIncome:    rec.Amount.IsIncome(),
		})
	}
	return vm, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	vm, err := s.dashboardViewModel(r, user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard load failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, "dashboard.html", vm)
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	if err := r.ParseForm(); err != nil {
		s.renderDashboardError(w, r, user, http.StatusBadRequest, "Invalid form submission", "", "")
		return
	}

	amountStr := strings.TrimSpace(r.FormValue("amount"))
	description := sanitizeInput(r.FormValue("description"))
	category := sanitizeInput(r.FormValue("category"))

	cents, err := core.ParseAmountToCents(amountStr)
	if err != nil {
		s.renderDashboardError(w, r, user, http.StatusUnprocessableEntity, "Amount must be a non-zero number", amountStr, category)
		return
	}

	record := core.Record{
		UserID:      user.ID,
		Amount:      core.Money{Cents: cents},
		Description: description,
		Category:    category,
	}
	if err := record.Validate(); err != nil {
		s.renderDashboardError(w, r, user, http.StatusUnprocessableEntity, validationMessage(err), amountStr, category)
		return
	}

	if _, err := s.records.AppendRecord(r.Context(), user.ID, cents, description, category); err != nil {
		slog.ErrorContext(r.Context(), "Append record failed", "error", err, "user_id", user.ID)
		s.renderDashboardError(w, r, user, http.StatusInternalServerError, "An error occurred. Please try again.", amountStr, category)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// renderDashboardError re-renders the dashboard with an error message and the
// submitted form values preserved.
func (s *Server) renderDashboardError(w http.ResponseWriter, r *http.Request, user core.User, status int, msg, amount, category string) {
	vm, err := s.dashboardViewModel(r, user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard load failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	vm.Error = msg
	vm.Amount = amount
	vm.Category = category
	s.render(w, status, "dashboard.html", vm)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a non-zero number"
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required"
	case errors.Is(err, core.ErrEmptyCategory):
		return "Category is required"
	default:
		return err.Error()
	}
}
