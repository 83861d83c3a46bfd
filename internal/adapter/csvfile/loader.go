// Package csvfile loads a weather dataset from a CSV file with a header row.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/event-advisor/internal/domain"
)

// Column names recognized in the header row. Matching is case-insensitive;
// "date" is optional, every other column is required.
const (
	colDate             = "date"
	colRainfall         = "rainfall"
	colHighTemperature  = "high_temperature"
	colLowTemperature   = "low_temperature"
	colHumidity         = "humidity"
	colCloudCover       = "cloud_cover"
	colAverageWindSpeed = "average_wind_speed"
	colMaximumWindSpeed = "maximum_wind_speed"
	colAirPressure      = "air_pressure"
	colWindDirection    = "wind_direction"

	dateLayout = "2006-01-02"
)

var requiredColumns = []string{
	colRainfall, colHighTemperature, colLowTemperature, colHumidity, colCloudCover,
	colAverageWindSpeed, colMaximumWindSpeed, colAirPressure, colWindDirection,
}

// Load reads the dataset stored at path.
func Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses CSV rows, oldest first, into a dataset. It stops at the first
// malformed or out-of-range row.
func Read(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", domain.ErrInvalidDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	ds := domain.NewDataset()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds.Append(rec)
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("no data rows: %w", domain.ErrInvalidDataset)
	}
	return ds, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// rowParser accumulates the first conversion error so a row can be decoded
// field by field without an if-block per column.
type rowParser struct {
	row  []string
	cols map[string]int
	err  error
}

func (p *rowParser) field(name string) string {
	return strings.TrimSpace(p.row[p.cols[name]])
}

func (p *rowParser) floatField(name string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.field(name), 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (p *rowParser) intField(name string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(p.field(name))
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func parseRow(row []string, cols map[string]int) (domain.WeatherRecord, error) {
	p := &rowParser{row: row, cols: cols}
	rec := domain.WeatherRecord{
		Rainfall:         p.floatField(colRainfall),
		HighTemperature:  p.floatField(colHighTemperature),
		LowTemperature:   p.floatField(colLowTemperature),
		Humidity:         p.intField(colHumidity),
		CloudCover:       p.intField(colCloudCover),
		AverageWindSpeed: p.floatField(colAverageWindSpeed),
		MaximumWindSpeed: p.floatField(colMaximumWindSpeed),
		AirPressure:      p.floatField(colAirPressure),
	}
	if p.err != nil {
		return domain.WeatherRecord{}, p.err
	}

	dir, err := domain.ParseWindDirection(p.field(colWindDirection))
	if err != nil {
		return domain.WeatherRecord{}, err
	}
	rec.WindDirection = dir

	if _, ok := cols[colDate]; ok {
		if s := p.field(colDate); s != "" {
			d, err := time.Parse(dateLayout, s)
			if err != nil {
				return domain.WeatherRecord{}, fmt.Errorf("%s: %w", colDate, err)
			}
			rec.Date = d
		}
	}
	return rec, nil
}
