package hms

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carebridge/hms-ui/internal/domain/model"
)

// dateParam is the wire format for startDate/endDate filters.
const dateParam = "2006-01-02"

// DateRange is an optional date filter; zero bounds are omitted from the
// query so the backend applies its own defaults.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) query() url.Values {
	q := url.Values{}
	if !r.Start.IsZero() {
		q.Set("startDate", r.Start.Format(dateParam))
	}
	if !r.End.IsZero() {
		q.Set("endDate", r.End.Format(dateParam))
	}
	return q
}

// MyAppointments lists the caller's appointments, optionally filtered by
// date range. The backend scopes the result to the authenticated user.
func (c *Client) MyAppointments(ctx context.Context, filter DateRange) ([]model.Appointment, error) {
	var out []model.Appointment
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/appointments/my",
		query:  filter.query(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TodayAppointments lists today's appointments for the authenticated
// doctor.
func (c *Client) TodayAppointments(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/appointments/today",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BookAppointment creates a new appointment.
func (c *Client) BookAppointment(ctx context.Context, req model.BookAppointmentRequest) (model.Appointment, error) {
	var out model.Appointment
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/appointments",
		body:   req,
	}, &out)
	return out, err
}

// UpdateAppointmentStatus transitions an appointment's lifecycle state.
func (c *Client) UpdateAppointmentStatus(
	ctx context.Context,
	id int64,
	status model.AppointmentStatus,
) (model.Appointment, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var out model.Appointment
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/api/appointments/" + strconv.FormatInt(id, 10) + "/status",
		query:  q,
	}, &out)
	return out, err
}

// ListDoctors returns the doctor directory for the booking form.
func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	var out []model.Doctor
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/doctors",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
