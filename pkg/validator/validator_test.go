package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ObjectID string `validate:"required"`
	Title    string `validate:"required,min=5,max=100"`
	URL      string `validate:"required,startswith=/"`
	Category string `validate:"required,oneof=company solutions"`
}

func valid() sample {
	return sample{
		ObjectID: "home",
		Title:    "Foxes Technology",
		URL:      "/",
		Category: "company",
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(valid()))
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
		msg    string
	}{
		{"missing objectID", func(s *sample) { s.ObjectID = "" }, "ObjectID", "is required"},
		{"short title", func(s *sample) { s.Title = "abc" }, "Title", "at least 5"},
		{"relative url", func(s *sample) { s.URL = "about" }, "URL", `must start with "/"`},
		{"bad category", func(s *sample) { s.Category = "blog" }, "Category", "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := Validate(s)
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			fields := valErr.Fields()
			assert.Contains(t, fields[tt.field], tt.msg)
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"ObjectID":"home","Title":"Foxes Technology","URL":"/","Category":"company"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var s sample
	require.NoError(t, DecodeAndValidate(r, &s))
	assert.Equal(t, "home", s.ObjectID)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{"))

	var s sample
	err := DecodeAndValidate(r, &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
