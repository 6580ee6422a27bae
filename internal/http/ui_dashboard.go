package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	"github.com/carebridge/hms-ui/internal/domain/model"
	"github.com/carebridge/hms-ui/internal/domain/nav"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
)

// Dashboard redirects a logged-in visitor to their role's dashboard.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, nav.PublicEntryPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, nav.LandingPath(session.Role), http.StatusSeeOther)
}

// AdminDashboard shows a hospital-wide overview. Appointments and records
// load concurrently; a failure of either degrades to an error banner
// rather than a blank page.
// GET /admin/dashboard.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		appointments []model.Appointment
		records      []model.MedicalRecord
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		appointments, err = h.Appointments.MyAppointments(ctx, hms.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = h.Records.MyRecords(ctx, hms.DateRange{})
		return err
	})
	err := g.Wait()
	if h.handleBackendError(w, r, err) {
		return
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Admin Dashboard",
		PageTitle:   "Admin Dashboard",
		CurrentPage: PageDashboard,
	}).
		With("Appointments", limitItems(appointments, recentItemLimit)).
		With("Records", limitItems(records, recentItemLimit)).
		With("AppointmentCount", len(appointments)).
		With("ScheduledCount", countByStatus(appointments, model.AppointmentScheduled)).
		With("RecordCount", len(records))
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-admin-dashboard", builder.Build())
}

// DoctorDashboard shows today's schedule with completion, cancellation,
// and record-entry actions per appointment.
// GET /doctor/dashboard.
func (h *UIHandlers) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Appointments.TodayAppointments(r.Context())
	if h.handleBackendError(w, r, err) {
		return
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Doctor Dashboard",
		PageTitle:   "Today's Appointments",
		CurrentPage: PageDashboard,
	}).
		With("Appointments", appointments).
		With("ScheduledCount", countByStatus(appointments, model.AppointmentScheduled))
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-doctor-dashboard", builder.Build())
}

// PatientDashboard shows the patient's upcoming appointments and shortcuts
// to booking and records.
// GET /patient/dashboard.
func (h *UIHandlers) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Appointments.MyAppointments(r.Context(), hms.DateRange{})
	if h.handleBackendError(w, r, err) {
		return
	}

	upcoming := make([]model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == model.AppointmentScheduled {
			upcoming = append(upcoming, a)
		}
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - My Dashboard",
		PageTitle:   "My Dashboard",
		CurrentPage: PageDashboard,
	}).
		With("Upcoming", limitItems(upcoming, recentItemLimit)).
		With("UpcomingCount", len(upcoming))
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-patient-dashboard", builder.Build())
}

const recentItemLimit = 5

func limitItems[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func countByStatus(appointments []model.Appointment, status model.AppointmentStatus) int {
	count := 0
	for _, a := range appointments {
		if a.Status == status {
			count++
		}
	}
	return count
}
