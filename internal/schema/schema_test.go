package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewSchema() *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"rating", "comment", "date", "author"},
		Properties: map[string]Property{
			"rating":  {Type: "integer", Minimum: Num(1), Maximum: Num(5)},
			"comment": {Type: "string", MinLength: Int(1)},
			"date":    {Type: "string", Format: FormatDateTime},
			"author":  {Type: "string", MinLength: Int(1)},
		},
	}
}

func validReviewPayload() map[string]any {
	return map[string]any{
		"rating":  float64(4),
		"comment": "held up on rewatch",
		"date":    "2022-11-05T18:30:00.000000Z",
		"author":  "moviefan",
	}
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	err := reviewSchema().Validate(validReviewPayload())
	assert.NoError(t, err)
}

func TestValidateMissingRequiredField(t *testing.T) {
	payload := validReviewPayload()
	delete(payload, "author")

	err := reviewSchema().Validate(payload)
	assert.EqualError(t, err, "author: required field is missing")
}

func TestValidateReportsFirstViolationOnly(t *testing.T) {
	payload := validReviewPayload()
	payload["rating"] = float64(9)
	payload["comment"] = ""

	err := reviewSchema().Validate(payload)
	var schemaErr *Error
	assert.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "rating", schemaErr.Field)
}

func TestValidateIntegerBounds(t *testing.T) {
	s := reviewSchema()

	for _, rating := range []float64{1, 5} {
		payload := validReviewPayload()
		payload["rating"] = rating
		assert.NoError(t, s.Validate(payload))
	}

	for _, rating := range []float64{0, 6} {
		payload := validReviewPayload()
		payload["rating"] = rating
		assert.Error(t, s.Validate(payload))
	}
}

func TestValidateRejectsFractionalInteger(t *testing.T) {
	payload := validReviewPayload()
	payload["rating"] = 3.5

	err := reviewSchema().Validate(payload)
	assert.EqualError(t, err, "rating: must be an integer")
}

func TestValidateRejectsWrongType(t *testing.T) {
	payload := validReviewPayload()
	payload["comment"] = float64(7)

	err := reviewSchema().Validate(payload)
	assert.EqualError(t, err, "comment: must be a string")
}

func TestValidateMinLength(t *testing.T) {
	payload := validReviewPayload()
	payload["comment"] = ""

	err := reviewSchema().Validate(payload)
	assert.EqualError(t, err, "comment: must be at least 1 characters long")
}

func TestValidateEnum(t *testing.T) {
	s := &Schema{
		Type:     "object",
		Required: []string{"role"},
		Properties: map[string]Property{
			"role": {Type: "string", Enum: []string{"Admin", "Basic User"}},
		},
	}

	assert.NoError(t, s.Validate(map[string]any{"role": "Basic User"}))
	assert.Error(t, s.Validate(map[string]any{"role": "Superuser"}))
}

func TestValidateEmailFormat(t *testing.T) {
	s := &Schema{
		Type:     "object",
		Required: []string{"email_address"},
		Properties: map[string]Property{
			"email_address": {Type: "string", Format: FormatEmail},
		},
	}

	assert.NoError(t, s.Validate(map[string]any{"email_address": "alice@example.com"}))
	assert.Error(t, s.Validate(map[string]any{"email_address": "not-an-email"}))
}

func TestValidateDateFormat(t *testing.T) {
	s := &Schema{
		Type:     "object",
		Required: []string{"release_date"},
		Properties: map[string]Property{
			"release_date": {Type: "string", Format: FormatDate},
		},
	}

	assert.NoError(t, s.Validate(map[string]any{"release_date": "1994-09-23"}))
	assert.Error(t, s.Validate(map[string]any{"release_date": "23.09.1994"}))
	assert.Error(t, s.Validate(map[string]any{"release_date": "1994-13-40"}))
}

func TestValidateDateTimeAcceptsRFC3339Fallback(t *testing.T) {
	payload := validReviewPayload()
	payload["date"] = "2022-11-05T18:30:00Z"

	assert.NoError(t, reviewSchema().Validate(payload))

	payload["date"] = "yesterday"
	assert.EqualError(t, reviewSchema().Validate(payload), "date: must be an ISO 8601 timestamp")
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	payload := validReviewPayload()
	payload["extra"] = "anything"

	assert.NoError(t, reviewSchema().Validate(payload))
}
