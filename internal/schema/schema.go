// Package schema implements the JSON schema documents that are validated
// against incoming request payloads and embedded into hypermedia controls.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"
)

const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatEmail    = "email"

	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05.000000Z"
)

var emailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Error describes the first constraint a payload violated.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Property declares the constraints of a single payload field. The JSON tags
// produce a draft-04 style schema object when a control embeds the schema.
type Property struct {
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
}

// Schema is a static, declarative description of a resource payload. Schemas
// are fixed configuration, never derived from requests.
type Schema struct {
	Type       string              `json:"type"`
	Required   []string            `json:"required,omitempty"`
	Properties map[string]Property `json:"properties,omitempty"`
}

// Int and Num build the optional bound pointers used in schema literals.
func Int(v int) *int { return &v }

func Num(v float64) *float64 { return &v }

// Validate checks the payload against the schema and reports the first
// violation as a *Error. Required fields are checked in declaration order,
// then field constraints, so validation output is deterministic.
func (s *Schema) Validate(payload map[string]any) error {
	for _, field := range s.Required {
		if _, ok := payload[field]; !ok {
			return &Error{Field: field, Reason: "required field is missing"}
		}
	}

	for _, field := range s.orderedFields() {
		value, ok := payload[field]
		if !ok {
			continue
		}
		if err := s.Properties[field].validate(field, value); err != nil {
			return err
		}
	}
	return nil
}

// orderedFields lists the schema's properties with the required fields first,
// remaining fields in lexical order.
func (s *Schema) orderedFields() []string {
	seen := make(map[string]bool, len(s.Properties))
	fields := make([]string, 0, len(s.Properties))
	for _, field := range s.Required {
		if _, ok := s.Properties[field]; ok && !seen[field] {
			fields = append(fields, field)
			seen[field] = true
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for field := range s.Properties {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	return append(fields, rest...)
}

func (p Property) validate(field string, value any) error {
	switch p.Type {
	case "string":
		str, ok := value.(string)
		if !ok {
			return &Error{Field: field, Reason: "must be a string"}
		}
		return p.validateString(field, str)
	case "integer":
		n, ok := asInteger(value)
		if !ok {
			return &Error{Field: field, Reason: "must be an integer"}
		}
		return p.validateNumber(field, float64(n))
	case "number":
		n, ok := asNumber(value)
		if !ok {
			return &Error{Field: field, Reason: "must be a number"}
		}
		return p.validateNumber(field, n)
	}
	return nil
}

func (p Property) validateString(field, value string) error {
	if p.MinLength != nil && len(value) < *p.MinLength {
		return &Error{Field: field, Reason: fmt.Sprintf("must be at least %d characters long", *p.MinLength)}
	}
	if p.MaxLength != nil && len(value) > *p.MaxLength {
		return &Error{Field: field, Reason: fmt.Sprintf("must be at most %d characters long", *p.MaxLength)}
	}
	if len(p.Enum) > 0 && !contains(p.Enum, value) {
		return &Error{Field: field, Reason: fmt.Sprintf("must be one of %v", p.Enum)}
	}
	switch p.Format {
	case FormatEmail:
		if !emailRX.MatchString(value) {
			return &Error{Field: field, Reason: "must be a valid email address"}
		}
	case FormatDate:
		if _, err := time.Parse(DateLayout, value); err != nil {
			return &Error{Field: field, Reason: "must be a date in the format YYYY-MM-DD"}
		}
	case FormatDateTime:
		if _, err := time.Parse(DateTimeLayout, value); err != nil {
			if _, err := time.Parse(time.RFC3339, value); err != nil {
				return &Error{Field: field, Reason: "must be an ISO 8601 timestamp"}
			}
		}
	}
	return nil
}

func (p Property) validateNumber(field string, value float64) error {
	if p.Minimum != nil && value < *p.Minimum {
		return &Error{Field: field, Reason: fmt.Sprintf("must be greater than or equal to %v", *p.Minimum)}
	}
	if p.Maximum != nil && value > *p.Maximum {
		return &Error{Field: field, Reason: fmt.Sprintf("must be less than or equal to %v", *p.Maximum)}
	}
	return nil
}

// asInteger accepts the numeric types a decoded JSON payload (or a test
// fixture built by hand) can carry, rejecting fractional values.
func asInteger(value any) (int64, bool) {
	switch n := value.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
