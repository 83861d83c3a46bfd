package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// Write emits records in the column layout Read expects, header first.
// Records without a date get an empty date cell.
func Write(w io.Writer, records []domain.WeatherRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{colDate}, requiredColumns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(formatRow(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRow(r domain.WeatherRecord) []string {
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format(dateLayout)
	}
	// Same order as requiredColumns.
	return []string{
		date,
		formatFloat(r.Rainfall),
		formatFloat(r.HighTemperature),
		formatFloat(r.LowTemperature),
		strconv.Itoa(r.Humidity),
		strconv.Itoa(r.CloudCover),
		formatFloat(r.AverageWindSpeed),
		formatFloat(r.MaximumWindSpeed),
		formatFloat(r.AirPressure),
		string(r.WindDirection),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
