package domain

import "errors"

var (
	// ErrInvalidDataset is returned when a prediction is requested over a
	// dataset that holds no records.
	ErrInvalidDataset = errors.New("invalid dataset: no weather records")

	// ErrInvalidDays is returned when an averaging window of less than one
	// day is requested.
	ErrInvalidDays = errors.New("invalid number of days: must be at least 1")

	// ErrInvalidHour is returned by Event.Validate for hours outside 0-23.
	ErrInvalidHour = errors.New("invalid event hour: must be between 0 and 23")

	// ErrInvalidWindDirection is returned for anything that is not one of the
	// 16 compass points.
	ErrInvalidWindDirection = errors.New("invalid wind direction")

	// ErrInvalidRecord is returned by WeatherRecord.Validate.
	ErrInvalidRecord = errors.New("invalid weather record")
)
