package httpx

import (
	"net/http"
	"time"

	"github.com/carebridge/hms-ui/internal/clients/hms"
)

const filterDateLayout = "2006-01-02"

// parseDateRange reads the optional startDate/endDate query parameters used
// by appointment and record list views. Unparseable values are treated as
// absent so a bad bookmark never breaks the page.
func parseDateRange(r *http.Request) hms.DateRange {
	var filter hms.DateRange
	q := r.URL.Query()

	if v := q.Get("startDate"); v != "" {
		if t, err := time.Parse(filterDateLayout, v); err == nil {
			filter.Start = t
		}
	}
	if v := q.Get("endDate"); v != "" {
		if t, err := time.Parse(filterDateLayout, v); err == nil {
			filter.End = t
		}
	}

	return filter
}

// dateRangeTemplateData exposes the active filter back to the template so
// the form inputs keep their values after submission.
func dateRangeTemplateData(filter hms.DateRange) map[string]string {
	data := map[string]string{"StartDate": "", "EndDate": ""}
	if !filter.Start.IsZero() {
		data["StartDate"] = filter.Start.Format(filterDateLayout)
	}
	if !filter.End.IsZero() {
		data["EndDate"] = filter.End.Format(filterDateLayout)
	}
	return data
}
