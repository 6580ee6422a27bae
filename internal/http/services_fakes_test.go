package httpx

import (
	"context"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	"github.com/carebridge/hms-ui/internal/domain/model"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
)

// fakeAppointments is a hand-written AppointmentsService double. Unset
// functions return empty results.
type fakeAppointments struct {
	myFunc     func(ctx context.Context, filter hms.DateRange) ([]model.Appointment, error)
	todayFunc  func(ctx context.Context) ([]model.Appointment, error)
	bookFunc   func(ctx context.Context, req model.BookAppointmentRequest) (model.Appointment, error)
	statusFunc func(ctx context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error)
	doctors    []model.Doctor
}

func (f *fakeAppointments) MyAppointments(ctx context.Context, filter hms.DateRange) ([]model.Appointment, error) {
	if f.myFunc != nil {
		return f.myFunc(ctx, filter)
	}
	return nil, nil
}

func (f *fakeAppointments) TodayAppointments(ctx context.Context) ([]model.Appointment, error) {
	if f.todayFunc != nil {
		return f.todayFunc(ctx)
	}
	return nil, nil
}

func (f *fakeAppointments) BookAppointment(ctx context.Context, req model.BookAppointmentRequest) (model.Appointment, error) {
	if f.bookFunc != nil {
		return f.bookFunc(ctx, req)
	}
	return model.Appointment{}, nil
}

func (f *fakeAppointments) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error) {
	if f.statusFunc != nil {
		return f.statusFunc(ctx, id, status)
	}
	return model.Appointment{}, nil
}

func (f *fakeAppointments) ListDoctors(_ context.Context) ([]model.Doctor, error) {
	return f.doctors, nil
}

// fakeRecords is a hand-written RecordsService double.
type fakeRecords struct {
	myFunc     func(ctx context.Context, filter hms.DateRange) ([]model.MedicalRecord, error)
	byIDFunc   func(ctx context.Context, id int64) (model.MedicalRecord, error)
	createFunc func(ctx context.Context, req model.CreateRecordRequest) (model.MedicalRecord, error)
}

func (f *fakeRecords) MyRecords(ctx context.Context, filter hms.DateRange) ([]model.MedicalRecord, error) {
	if f.myFunc != nil {
		return f.myFunc(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRecords) RecordByID(ctx context.Context, id int64) (model.MedicalRecord, error) {
	if f.byIDFunc != nil {
		return f.byIDFunc(ctx, id)
	}
	return model.MedicalRecord{}, apperrors.NotFound("record not found")
}

func (f *fakeRecords) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (model.MedicalRecord, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return model.MedicalRecord{}, nil
}

// fakeAccount is a hand-written AccountService double.
type fakeAccount struct {
	registerFunc func(ctx context.Context, req hms.RegisterRequest) error
	otpFunc      func(ctx context.Context, username string) error
	resetFunc    func(ctx context.Context, username, otp, newPassword string) error
}

func (f *fakeAccount) Register(ctx context.Context, req hms.RegisterRequest) error {
	if f.registerFunc != nil {
		return f.registerFunc(ctx, req)
	}
	return nil
}

func (f *fakeAccount) RequestPasswordOTP(ctx context.Context, username string) error {
	if f.otpFunc != nil {
		return f.otpFunc(ctx, username)
	}
	return nil
}

func (f *fakeAccount) ResetPassword(ctx context.Context, username, otp, newPassword string) error {
	if f.resetFunc != nil {
		return f.resetFunc(ctx, username, otp, newPassword)
	}
	return nil
}
