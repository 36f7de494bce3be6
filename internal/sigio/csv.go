package sigio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"lfpsync/internal/errors"
	"lfpsync/internal/signal"
)

// LoadCSVColumn reads one numeric column (one sample per row) from a CSV
// export into a Signal. CSV files carry no rate, so the caller supplies it.
// A single non-numeric leading row is treated as a header and skipped.
func LoadCSVColumn(path string, column, rate int, role signal.Role) (signal.Signal, error) {
	if rate <= 0 {
		return signal.Signal{}, errors.Newf("sample rate must be positive, got %d", rate).
			Component("sigio").
			Category(errors.CategoryValidation).
			Build()
	}
	if column < 0 {
		return signal.Signal{}, errors.Newf("column must not be negative, got %d", column).
			Component("sigio").
			Category(errors.CategoryValidation).
			Build()
	}

	file, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, errors.New(err).
			Component("sigio").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var samples []float64
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return signal.Signal{}, errors.New(err).
				Component("sigio").
				Category(errors.CategoryFileIO).
				Context("path", path).
				Context("row", row).
				Build()
		}
		row++
		if column >= len(record) {
			return signal.Signal{}, errors.Newf("row %d has %d columns, need column %d", row, len(record), column).
				Component("sigio").
				Category(errors.CategoryValidation).
				Context("path", path).
				Build()
		}
		v, err := strconv.ParseFloat(record[column], 64)
		if err != nil {
			if row == 1 {
				// header row
				continue
			}
			return signal.Signal{}, errors.Newf("row %d column %d: %q is not a number", row, column, record[column]).
				Component("sigio").
				Category(errors.CategoryValidation).
				Context("path", path).
				Build()
		}
		samples = append(samples, v)
	}

	if len(samples) == 0 {
		return signal.Signal{}, errors.Newf("no samples in %s column %d", path, column).
			Component("sigio").
			Category(errors.CategoryValidation).
			Build()
	}
	return signal.New(samples, rate, role), nil
}
