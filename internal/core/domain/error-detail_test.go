package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetail_String(t *testing.T) {
	var payload struct {
		Detail ErrorDetail `json:"detail"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"detail":"Email already registered"}`), &payload))

	assert.Equal(t, DetailString, payload.Detail.Kind)
	assert.Equal(t, "Email already registered", payload.Detail.Message())
}

func TestErrorDetail_ValidationList(t *testing.T) {
	var payload struct {
		Detail ErrorDetail `json:"detail"`
	}
	body := `{"detail":[{"loc":["body","name"],"msg":"field required","type":"value_error.missing"},{"loc":["body","price"],"msg":"value is not a valid float"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.Equal(t, DetailValidationList, payload.Detail.Kind)
	assert.Len(t, payload.Detail.Issues, 2)
	assert.Equal(t, "field required; value is not a valid float", payload.Detail.Message())
}

func TestErrorDetail_Missing(t *testing.T) {
	var payload struct {
		Detail ErrorDetail `json:"detail"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Equal(t, DetailNone, payload.Detail.Kind)
	assert.Empty(t, payload.Detail.Message())
}

func TestServerError_Is(t *testing.T) {
	err := fmt.Errorf("get profile: %w", &ServerError{StatusCode: 401})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, errors.Is(err, ErrNotFound))

	assert.ErrorIs(t, &ServerError{StatusCode: 404}, ErrNotFound)
}

func TestDisplayMessage(t *testing.T) {
	withDetail := &ServerError{StatusCode: 400, Detail: ErrorDetail{Kind: DetailString, Text: "Invalid model ID"}}
	noDetail := &ServerError{StatusCode: 500}

	assert.Equal(t, "Invalid model ID", DisplayMessage(withDetail, "could not load model"))
	assert.Equal(t, "could not load model", DisplayMessage(noDetail, "could not load model"))
	assert.Equal(t, NetworkProblemMessage, DisplayMessage(fmt.Errorf("x: %w", ErrNetwork), "fallback"))
	assert.Equal(t, NetworkProblemMessage, DisplayMessage(fmt.Errorf("x: %w", ErrMalformedResponse), "fallback"))
	assert.Equal(t, ErrNotAuthenticated.Error(), DisplayMessage(ErrNotAuthenticated, "fallback"))
	assert.Empty(t, DisplayMessage(nil, "fallback"))
}

func TestTimestamp_Unmarshal(t *testing.T) {
	cases := []string{
		`"2024-05-01T10:20:30.123456"`,
		`"2024-05-01T10:20:30"`,
		`"2024-05-01T10:20:30Z"`,
		`"2024-05-01T13:20:30+03:00"`,
	}
	for _, c := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(c), &ts), c)
		assert.Equal(t, 2024, ts.Year())
		assert.Equal(t, 10, ts.Hour(), c)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.False(t, c.Concrete())

	c, err = ParseCategory(AllCategoriesLabel)
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseCategory("Декор")
	require.NoError(t, err)
	assert.Equal(t, CategoryDecor, c)

	_, err = ParseCategory("Furniture")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestModelDetails_File(t *testing.T) {
	d := ModelDetails{FileData: "c29saWQgY3ViZQ=="}
	data, err := d.File()
	require.NoError(t, err)
	assert.Equal(t, "solid cube", string(data))

	d = ModelDetails{FileData: "!!"}
	_, err = d.File()
	assert.Error(t, err)
}
