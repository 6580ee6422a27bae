package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/model"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/http/validation"
)

// datetimeLocalLayout matches the value format of <input type="datetime-local">.
const datetimeLocalLayout = "2006-01-02T15:04"

// displayTimeLayout is the human-readable form stored with a booking.
const displayTimeLayout = "Jan 2, 2006 3:04 PM"

// AppointmentsList shows the visitor's appointments with optional date
// filtering. Patients see their own bookings; doctors and admins see the
// appointments in their care.
// GET /appointments/list.
func (h *UIHandlers) AppointmentsList(w http.ResponseWriter, r *http.Request) {
	filter := parseDateRange(r)

	appointments, err := h.Appointments.MyAppointments(r.Context(), filter)
	if h.handleBackendError(w, r, err) {
		return
	}

	session := GetSessionFromContext(r.Context())
	pageTitle := "Appointments"
	if session != nil && session.Role == domainauth.RolePatient {
		pageTitle = "My Appointments"
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - " + pageTitle,
		PageTitle:   pageTitle,
		CurrentPage: PageAppointments,
	}).
		With("Appointments", appointments).
		With("Filter", dateRangeTemplateData(filter))
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-appointments", builder.Build())
}

// AppointmentBookForm serves the booking form. The doctor list and the
// caller's upcoming appointments load concurrently.
// GET /appointments/book.
func (h *UIHandlers) AppointmentBookForm(w http.ResponseWriter, r *http.Request) {
	doctors, upcoming, err := h.fetchBookingContext(r)
	if h.handleBackendError(w, r, err) {
		return
	}

	data := h.bookingFormData(r, bookingForm{}, nil)
	data["Doctors"] = doctors
	data["Upcoming"] = upcoming
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = apperrors.UserMessage(err)
	}

	h.renderPage(w, "page-book-appointment", data)
}

// bookingForm holds the raw booking form values for re-rendering on error.
// PatientID is only posted by non-patient bookers; patients book for
// themselves and the field stays empty.
type bookingForm struct {
	PatientID       string
	DoctorID        string
	AppointmentTime string
	Reason          string
}

// AppointmentBookSubmit handles the booking form. Local validation runs
// first; backend rejections (slot conflicts, validation) re-render the
// form with the returned messages.
// POST /appointments/book.
func (h *UIHandlers) AppointmentBookSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := bookingForm{
		PatientID:       strings.TrimSpace(r.PostFormValue("patientId")),
		DoctorID:        strings.TrimSpace(r.PostFormValue("doctorId")),
		AppointmentTime: strings.TrimSpace(r.PostFormValue("appointmentTime")),
		Reason:          strings.TrimSpace(r.PostFormValue("reason")),
	}

	fieldErrors := validation.Run(map[string]validation.Field{
		"doctorId": {Value: form.DoctorID, Validators: []validation.Validator{
			validation.Required("Doctor", 20),
		}},
		"appointmentTime": {Value: form.AppointmentTime, Validators: []validation.Validator{
			validation.FutureDateTime("Appointment time", datetimeLocalLayout),
		}},
		"reason": {Value: form.Reason, Validators: []validation.Validator{
			validation.Required("Reason", 250),
		}},
	})
	doctorID, err := strconv.ParseInt(form.DoctorID, 10, 64)
	if err != nil && fieldErrors["doctorId"] == "" {
		fieldErrors["doctorId"] = "Doctor is required."
	}

	// Patients always book for themselves. Admins name the patient explicitly.
	patientID := session.Identity.ID
	if session.Role != domainauth.RolePatient {
		pid, pidErr := strconv.ParseInt(form.PatientID, 10, 64)
		if pidErr != nil || pid <= 0 {
			fieldErrors["patientId"] = "Patient ID is required."
		} else {
			patientID = pid
		}
	}

	if len(fieldErrors) > 0 {
		h.rerenderBookingForm(w, r, form, fieldErrors, errMsgFixBelow)
		return
	}

	when, _ := time.ParseInLocation(datetimeLocalLayout, form.AppointmentTime, time.Local)
	req := model.BookAppointmentRequest{
		DoctorID:          doctorID,
		PatientID:         patientID,
		AppointmentTime:   model.NewLocalTime(when),
		Reason:            form.Reason,
		DisplayTimeString: when.Format(displayTimeLayout),
	}

	if _, bookErr := h.Appointments.BookAppointment(r.Context(), req); bookErr != nil {
		if h.handleBackendError(w, r, bookErr) {
			return
		}
		if fieldErrs := apperrors.ValidationFields(bookErr); len(fieldErrs) > 0 {
			h.rerenderBookingForm(w, r, form, fieldErrs, errMsgFixBelow)
			return
		}
		h.rerenderBookingForm(w, r, form, nil, apperrors.UserMessage(bookErr))
		return
	}

	http.Redirect(w, r, "/appointments/list", http.StatusSeeOther)
}

// AppointmentStatusUpdate lets a doctor complete or cancel an appointment.
// POST /appointments/{id}/status with form field status.
func (h *UIHandlers) AppointmentStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := model.AppointmentStatus(r.PostFormValue("status"))
	if status != model.AppointmentCompleted && status != model.AppointmentCancelled {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if _, updateErr := h.Appointments.UpdateAppointmentStatus(r.Context(), id, status); updateErr != nil {
		if h.handleBackendError(w, r, updateErr) {
			return
		}
		http.Error(w, apperrors.UserMessage(updateErr), http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, safeRedirectPath(r.PostFormValue("return")), http.StatusSeeOther)
}

func (h *UIHandlers) fetchBookingContext(r *http.Request) ([]model.Doctor, []model.Appointment, error) {
	var (
		doctors  []model.Doctor
		upcoming []model.Appointment
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		doctors, err = h.Appointments.ListDoctors(ctx)
		return err
	})
	g.Go(func() error {
		all, err := h.Appointments.MyAppointments(ctx, hms.DateRange{})
		if err != nil {
			return err
		}
		for _, a := range all {
			if a.Status == model.AppointmentScheduled {
				upcoming = append(upcoming, a)
			}
		}
		return nil
	})

	return doctors, upcoming, g.Wait()
}

func (h *UIHandlers) bookingFormData(r *http.Request, form bookingForm, fieldErrors map[string]string) map[string]any {
	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Book Appointment",
		PageTitle:   "Book Appointment",
		CurrentPage: PageBookAppointment,
	}).
		With("Form", form).
		WithFieldErrors(fieldErrors)
	return builder.Build()
}

func (h *UIHandlers) rerenderBookingForm(
	w http.ResponseWriter,
	r *http.Request,
	form bookingForm,
	fieldErrors map[string]string,
	generalError string,
) {
	doctors, upcoming, err := h.fetchBookingContext(r)
	if err != nil {
		h.logger().WarnContext(r.Context(), "reload booking context failed", "error", err)
	}

	data := h.bookingFormData(r, form, fieldErrors)
	data["Doctors"] = doctors
	data["Upcoming"] = upcoming
	if generalError != "" {
		data["Error"] = true
		data["ErrorMessage"] = generalError
	}

	h.renderPage(w, "page-book-appointment", data)
}
