package model

// Package model contains the data shapes exchanged with the HMS backend.
// The backend owns validation and persistence; these types only mirror its
// JSON contract.

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is an appointment record as returned by the backend.
type Appointment struct {
	ID              int64             `json:"id"`
	PatientID       int64             `json:"patientId"`
	PatientName     string            `json:"patientName"`
	DoctorID        int64             `json:"doctorId"`
	DoctorName      string            `json:"doctorName"`
	AppointmentTime LocalTime         `json:"appointmentTime"`
	Status          AppointmentStatus `json:"status"`
	Reason          string            `json:"reason"`
	HasRecord       bool              `json:"hasRecord"`
	DisplayTime     string            `json:"displayTime"`
}

// When returns the backend-formatted display string when present, falling
// back to the raw timestamp.
func (a Appointment) When() string {
	if a.DisplayTime != "" {
		return a.DisplayTime
	}
	return a.AppointmentTime.String()
}

// BookAppointmentRequest is the payload for booking a new appointment.
type BookAppointmentRequest struct {
	DoctorID          int64     `json:"doctorId"`
	PatientID         int64     `json:"patientId"`
	AppointmentTime   LocalTime `json:"appointmentTime"`
	Reason            string    `json:"reason"`
	DisplayTimeString string    `json:"displayTimeString"`
}

// Doctor is the list entry used by the booking form's doctor picker.
type Doctor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}
