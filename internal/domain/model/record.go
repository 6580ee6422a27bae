package model

// MedicalRecord is a medical record as returned by the backend. The backend
// applies role-based filtering server-side; the client renders what it gets.
type MedicalRecord struct {
	ID                int64     `json:"id"`
	PatientID         int64     `json:"patientId"`
	PatientName       string    `json:"patientName"`
	DoctorID          int64     `json:"doctorId"`
	DoctorName        string    `json:"doctorName"`
	RecordedAt        LocalTime `json:"recordedAt"`
	Diagnosis         string    `json:"diagnosis"`
	ConsultationNotes string    `json:"consultationNotes"`
}

// CreateRecordRequest is the payload for creating a medical record after a
// completed consultation.
type CreateRecordRequest struct {
	PatientID         int64  `json:"patientId"`
	DoctorID          int64  `json:"doctorId"`
	AppointmentID     int64  `json:"appointmentId"`
	Diagnosis         string `json:"diagnosis"`
	ConsultationNotes string `json:"consultationNotes"`
}
