package cli

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/label"
)

// Job couples a catalog product id with the variable inputs of one label.
type Job struct {
	ProductID string
	Input     label.JobInput
}

// dateLayout is the day-first date format used in job CSVs.
const dateLayout = "02/01/2006"

// Required and optional job CSV columns.
const (
	colProductID   = "product_id"
	colLot         = "batch_lot_no"
	colManufacture = "date_of_manufacture"
	colTestReport  = "test_report_no"
	colRetest      = "retest_date"
	colSerial      = "serial_number"
)

// parseJobs reads a job CSV. The first row is a header; column order is
// free. product_id, batch_lot_no and date_of_manufacture are required,
// the rest optional. Dates are DD/MM/YYYY.
func parseJobs(r io.Reader) ([]Job, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading job csv header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colProductID, colLot, colManufacture} {
		if _, ok := cols[required]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"job csv is missing the %s column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var jobs []Job
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading job csv line %d", line)
		}

		manufacture, err := time.Parse(dateLayout, field(row, colManufacture))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDate, err,
				"line %d: manufacture date must be DD/MM/YYYY", line)
		}

		job := Job{
			ProductID: field(row, colProductID),
			Input: label.JobInput{
				LotID:           field(row, colLot),
				ManufactureDate: manufacture,
				TestReport:      field(row, colTestReport),
				Serial:          field(row, colSerial),
			},
		}
		if job.ProductID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: empty product_id", line)
		}

		if raw := field(row, colRetest); raw != "" {
			retest, err := time.Parse(dateLayout, raw)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDate, err,
					"line %d: retest date must be DD/MM/YYYY", line)
			}
			job.Input.RequalOverride = &retest
		}

		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "job csv has no data rows")
	}
	return jobs, nil
}
