package hms

import (
	"context"
	"net/http"
	"strconv"

	"github.com/carebridge/hms-ui/internal/domain/model"
)

// CreateRecord creates a medical record for a completed consultation.
func (c *Client) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (model.MedicalRecord, error) {
	var out model.MedicalRecord
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/records",
		body:   req,
	}, &out)
	return out, err
}

// RecordByID fetches a single medical record.
func (c *Client) RecordByID(ctx context.Context, id int64) (model.MedicalRecord, error) {
	var out model.MedicalRecord
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/records/" + strconv.FormatInt(id, 10),
	}, &out)
	return out, err
}

// MyRecords lists the records the authenticated user may see; the backend
// applies role-based filtering.
func (c *Client) MyRecords(ctx context.Context, filter DateRange) ([]model.MedicalRecord, error) {
	var out []model.MedicalRecord
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/records/my",
		query:  filter.query(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
