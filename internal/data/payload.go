package data

import (
	"math"
	"time"

	"moviereview/internal/schema"
)

// The helpers below pull typed values out of a decoded JSON payload. The
// payload has already passed schema validation, but deserialization still
// reports its own failures so format problems surface as bad requests rather
// than panics.

func stringField(payload map[string]any, field string) (string, error) {
	value, ok := payload[field].(string)
	if !ok {
		return "", &InvalidPayloadError{Field: field, Reason: "must be a string"}
	}
	return value, nil
}

func intField(payload map[string]any, field string) (int, error) {
	switch n := payload[field].(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, &InvalidPayloadError{Field: field, Reason: "must be an integer"}
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, &InvalidPayloadError{Field: field, Reason: "must be an integer"}
}

func dateField(payload map[string]any, field string) (time.Time, error) {
	value, err := stringField(payload, field)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(schema.DateLayout, value)
	if err != nil {
		return time.Time{}, &InvalidPayloadError{Field: field, Reason: "must be a date in the format YYYY-MM-DD"}
	}
	return t, nil
}

func timestampField(payload map[string]any, field string) (time.Time, error) {
	value, err := stringField(payload, field)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(schema.DateTimeLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, &InvalidPayloadError{Field: field, Reason: "must be an ISO 8601 timestamp"}
		}
	}
	return t, nil
}
