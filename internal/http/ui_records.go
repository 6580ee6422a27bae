package httpx

import (
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/model"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/http/validation"
)

// RecordsList shows medical records with optional date filtering. Patients
// see their own history; doctors and admins see the records they can access.
// GET /records/list.
func (h *UIHandlers) RecordsList(w http.ResponseWriter, r *http.Request) {
	filter := parseDateRange(r)

	records, err := h.Records.MyRecords(r.Context(), filter)
	if h.handleBackendError(w, r, err) {
		return
	}

	session := GetSessionFromContext(r.Context())
	pageTitle := "Patient Records"
	if session != nil && session.Role == domainauth.RolePatient {
		pageTitle = "My Records"
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - " + pageTitle,
		PageTitle:   pageTitle,
		CurrentPage: PageRecords,
	}).
		With("Records", records).
		With("Filter", dateRangeTemplateData(filter))
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-records", builder.Build())
}

// RecordView shows a single medical record.
// GET /records/view/{recordId}.
func (h *UIHandlers) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("recordId"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/records/list", http.StatusSeeOther)
		return
	}

	record, err := h.Records.RecordByID(r.Context(), id)
	if h.handleBackendError(w, r, err) {
		return
	}
	if apperrors.IsNotFound(err) {
		http.Redirect(w, r, "/records/list", http.StatusSeeOther)
		return
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Medical Record",
		PageTitle:   "Medical Record",
		CurrentPage: PageRecordView,
	}).
		With("Record", record)
	if err != nil {
		builder.WithError(apperrors.UserMessage(err))
	}

	h.renderPage(w, "page-record-view", builder.Build())
}

// recordForm holds the raw consultation form values for re-rendering on error.
type recordForm struct {
	Diagnosis         string
	ConsultationNotes string
}

// recordFormTarget identifies who the record is for, taken from the URL.
type recordFormTarget struct {
	PatientID     int64
	DoctorID      int64
	AppointmentID int64
}

// RecordCreateForm serves the consultation record form a doctor fills in
// after an appointment.
// GET /records/create/{patientId}/{doctorId}.
func (h *UIHandlers) RecordCreateForm(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseRecordTarget(w, r)
	if !ok {
		return
	}
	h.renderRecordForm(w, r, target, recordForm{}, nil, "")
}

// RecordCreateSubmit handles the consultation record form.
// POST /records/create/{patientId}/{doctorId}.
func (h *UIHandlers) RecordCreateSubmit(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseRecordTarget(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	form := recordForm{
		Diagnosis:         strings.TrimSpace(r.PostFormValue("diagnosis")),
		ConsultationNotes: strings.TrimSpace(r.PostFormValue("consultationNotes")),
	}

	fieldErrors := validation.Run(map[string]validation.Field{
		"diagnosis": {Value: form.Diagnosis, Validators: []validation.Validator{
			validation.Required("Diagnosis", 250),
		}},
		"consultationNotes": {Value: form.ConsultationNotes, Validators: []validation.Validator{
			validation.Required("Consultation notes", 2000),
		}},
	})
	if len(fieldErrors) > 0 {
		h.renderRecordForm(w, r, target, form, fieldErrors, errMsgFixBelow)
		return
	}

	req := model.CreateRecordRequest{
		PatientID:         target.PatientID,
		DoctorID:          target.DoctorID,
		AppointmentID:     target.AppointmentID,
		Diagnosis:         form.Diagnosis,
		ConsultationNotes: form.ConsultationNotes,
	}

	if _, createErr := h.Records.CreateRecord(r.Context(), req); createErr != nil {
		if h.handleBackendError(w, r, createErr) {
			return
		}
		if fieldErrs := apperrors.ValidationFields(createErr); len(fieldErrs) > 0 {
			h.renderRecordForm(w, r, target, form, fieldErrs, errMsgFixBelow)
			return
		}
		h.renderRecordForm(w, r, target, form, nil, apperrors.UserMessage(createErr))
		return
	}

	http.Redirect(w, r, "/records/list", http.StatusSeeOther)
}

func (h *UIHandlers) parseRecordTarget(w http.ResponseWriter, r *http.Request) (recordFormTarget, bool) {
	patientID, err := strconv.ParseInt(r.PathValue("patientId"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return recordFormTarget{}, false
	}
	doctorID, err := strconv.ParseInt(r.PathValue("doctorId"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return recordFormTarget{}, false
	}

	target := recordFormTarget{PatientID: patientID, DoctorID: doctorID}
	// The appointment link carries its ID so the backend can mark it recorded.
	if v := r.URL.Query().Get("appointmentId"); v != "" {
		if id, parseErr := strconv.ParseInt(v, 10, 64); parseErr == nil {
			target.AppointmentID = id
		}
	}
	return target, true
}

func (h *UIHandlers) renderRecordForm(
	w http.ResponseWriter,
	r *http.Request,
	target recordFormTarget,
	form recordForm,
	fieldErrors map[string]string,
	generalError string,
) {
	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - New Medical Record",
		PageTitle:   "New Medical Record",
		CurrentPage: PageRecordForm,
	}).
		With("Target", target).
		With("Form", form).
		WithFieldErrors(fieldErrors)
	if generalError != "" {
		builder.WithError(generalError)
	}

	h.renderPage(w, "page-record-form", builder.Build())
}

// NotFound sends unknown paths back to the entry page; Index then forwards
// logged-in visitors to their landing page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
