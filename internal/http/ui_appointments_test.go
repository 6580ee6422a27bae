package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/model"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
)

func TestAppointmentsList_TitleFollowsRole(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	w := httptest.NewRecorder()
	h.AppointmentsList(w, requestWithRole(httptest.NewRequest("GET", "/appointments/list", nil), domainauth.RolePatient))
	assert.Contains(t, w.Body.String(), "My Appointments")

	w = httptest.NewRecorder()
	h.AppointmentsList(w, requestWithRole(httptest.NewRequest("GET", "/appointments/list", nil), domainauth.RoleDoctor))
	assert.NotContains(t, w.Body.String(), "My Appointments")
	assert.Contains(t, w.Body.String(), "Appointments")
}

func TestAppointmentsList_FilterIsForwardedAndEchoed(t *testing.T) {
	var gotFilter hms.DateRange
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		myFunc: func(_ context.Context, filter hms.DateRange) ([]model.Appointment, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	r := requestWithRole(httptest.NewRequest("GET", "/appointments/list?startDate=2026-04-01&endDate=2026-04-30", nil), domainauth.RolePatient)
	w := httptest.NewRecorder()
	h.AppointmentsList(w, r)

	assert.Equal(t, "2026-04-01", gotFilter.Start.Format(filterDateLayout))
	assert.Equal(t, "2026-04-30", gotFilter.End.Format(filterDateLayout))
	assert.Contains(t, w.Body.String(), `value="2026-04-01"`)
	assert.Contains(t, w.Body.String(), `value="2026-04-30"`)
}

func TestAppointmentBookForm_ListsDoctors(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		doctors: []model.Doctor{
			{ID: 9, Name: "Dr. Gregory", Specialization: "Cardiology"},
		},
	}

	w := httptest.NewRecorder()
	h.AppointmentBookForm(w, requestWithRole(httptest.NewRequest("GET", "/appointments/book", nil), domainauth.RolePatient))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Dr. Gregory")
	assert.Contains(t, body, "Cardiology")
}

func TestAppointmentBookSubmit_LocalValidationBlocksBackendCall(t *testing.T) {
	booked := false
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		bookFunc: func(_ context.Context, _ model.BookAppointmentRequest) (model.Appointment, error) {
			booked = true
			return model.Appointment{}, nil
		},
	}

	r := requestWithRole(postForm("/appointments/book", url.Values{}), domainauth.RolePatient)
	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	assert.False(t, booked)
	body := w.Body.String()
	assert.Contains(t, body, "Doctor is required.")
	assert.Contains(t, body, "Appointment time is required.")
	assert.Contains(t, body, "Reason is required.")
}

func TestAppointmentBookSubmit_PastTimeRejected(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	past := time.Now().Add(-24 * time.Hour).Format(datetimeLocalLayout)
	r := requestWithRole(postForm("/appointments/book", url.Values{
		"doctorId":        {"9"},
		"appointmentTime": {past},
		"reason":          {"Checkup"},
	}), domainauth.RolePatient)

	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	assert.Contains(t, w.Body.String(), "Appointment time must be in the future.")
}

func TestAppointmentBookSubmit_Success(t *testing.T) {
	var gotReq model.BookAppointmentRequest
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		bookFunc: func(_ context.Context, req model.BookAppointmentRequest) (model.Appointment, error) {
			gotReq = req
			return model.Appointment{ID: 77}, nil
		},
	}

	when := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	r := requestWithRole(postForm("/appointments/book", url.Values{
		"doctorId":        {"9"},
		"appointmentTime": {when.Format(datetimeLocalLayout)},
		"reason":          {"Annual checkup"},
	}), domainauth.RolePatient)

	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/appointments/list", w.Header().Get("Location"))

	assert.Equal(t, int64(9), gotReq.DoctorID)
	// Patients book for themselves; the session decides the patient ID.
	assert.Equal(t, int64(1), gotReq.PatientID)
	assert.Equal(t, "Annual checkup", gotReq.Reason)
	assert.Equal(t, when.Format(displayTimeLayout), gotReq.DisplayTimeString)
	assert.True(t, gotReq.AppointmentTime.Equal(when))
}

func TestAppointmentBookSubmit_AdminBooksForNamedPatient(t *testing.T) {
	var gotReq model.BookAppointmentRequest
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		bookFunc: func(_ context.Context, req model.BookAppointmentRequest) (model.Appointment, error) {
			gotReq = req
			return model.Appointment{ID: 78}, nil
		},
	}

	when := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	r := requestWithRole(postForm("/appointments/book", url.Values{
		"patientId":       {"31"},
		"doctorId":        {"9"},
		"appointmentTime": {when.Format(datetimeLocalLayout)},
		"reason":          {"Follow-up"},
	}), domainauth.RoleAdmin)

	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, int64(31), gotReq.PatientID)
}

func TestAppointmentBookSubmit_AdminMustNamePatient(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	when := time.Now().Add(48 * time.Hour).Format(datetimeLocalLayout)
	r := requestWithRole(postForm("/appointments/book", url.Values{
		"doctorId":        {"9"},
		"appointmentTime": {when},
		"reason":          {"Follow-up"},
	}), domainauth.RoleAdmin)

	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Patient ID is required.")
}

func TestAppointmentBookSubmit_BackendConflictRerendersForm(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		bookFunc: func(_ context.Context, _ model.BookAppointmentRequest) (model.Appointment, error) {
			return model.Appointment{}, apperrors.Validation("Doctor is not available at the requested time.", nil)
		},
	}

	when := time.Now().Add(48 * time.Hour).Format(datetimeLocalLayout)
	r := requestWithRole(postForm("/appointments/book", url.Values{
		"doctorId":        {"9"},
		"appointmentTime": {when},
		"reason":          {"Checkup"},
	}), domainauth.RolePatient)

	w := httptest.NewRecorder()
	h.AppointmentBookSubmit(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Doctor is not available at the requested time.")
	// The submitted values are kept for correction.
	assert.Contains(t, body, when)
}

func TestAppointmentStatusUpdate_CompletesAndReturns(t *testing.T) {
	var gotID int64
	var gotStatus model.AppointmentStatus
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{
		statusFunc: func(_ context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error) {
			gotID, gotStatus = id, status
			return model.Appointment{ID: id, Status: status}, nil
		},
	}

	r := requestWithRole(postForm("/appointments/42/status", url.Values{
		"status": {"COMPLETED"},
		"return": {"/doctor/dashboard"},
	}), domainauth.RoleDoctor)
	r.SetPathValue("id", "42")

	w := httptest.NewRecorder()
	h.AppointmentStatusUpdate(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/doctor/dashboard", w.Header().Get("Location"))
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, model.AppointmentCompleted, gotStatus)
}

func TestAppointmentStatusUpdate_RejectsUnknownTransition(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	r := requestWithRole(postForm("/appointments/42/status", url.Values{
		"status": {"SCHEDULED"},
	}), domainauth.RoleDoctor)
	r.SetPathValue("id", "42")

	w := httptest.NewRecorder()
	h.AppointmentStatusUpdate(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentStatusUpdate_SanitizesReturnTarget(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	r := requestWithRole(postForm("/appointments/42/status", url.Values{
		"status": {"CANCELLED"},
		"return": {"https://evil.example/"},
	}), domainauth.RoleDoctor)
	r.SetPathValue("id", "42")

	w := httptest.NewRecorder()
	h.AppointmentStatusUpdate(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAppointmentStatusUpdate_BadIDIs404(t *testing.T) {
	h := newTestUIHandlers(t, &fakeSessions{})
	h.Appointments = &fakeAppointments{}

	r := requestWithRole(postForm("/appointments/abc/status", url.Values{"status": {"COMPLETED"}}), domainauth.RoleDoctor)
	r.SetPathValue("id", "abc")

	w := httptest.NewRecorder()
	h.AppointmentStatusUpdate(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
