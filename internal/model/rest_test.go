package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiResponse_OkCarriesDataAndNoError(t *testing.T) {
	resp := Ok([]string{"a", "b"}, "success")

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, []string{"a", "b"}, *resp.Data)
	assert.Empty(t, resp.Error)
}

func TestApiResponse_FailCarriesErrorAndNoData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Explicit error", input: "event not found", expected: "event not found"},
		{name: "Blank error", input: "  ", expected: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Fail[Event](tt.input)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			assert.Equal(t, tt.expected, resp.Error)
		})
	}
}

func TestApiResponse_JSONShape(t *testing.T) {
	tests := []struct {
		name     string
		response ApiResponse[any]
		expected string
	}{
		{
			name:     "Success with data and message",
			response: Success(map[string]any{"id": "123"}, "success"),
			expected: `{"success":true,"data":{"id":"123"},"message":"success"}`,
		},
		{
			name:     "Failure omits data",
			response: Failure("database connection failed"),
			expected: `{"success":false,"error":"database connection failed"}`,
		},
		{
			name:     "Status stays off the wire",
			response: FailStatus[any](404, "event not found"),
			expected: `{"success":false,"error":"event not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, err := json.Marshal(tt.response)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(jsonData))
		})
	}
}

func TestApiResponse_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSuccess bool
		wantError   string
		wantEvents  int
	}{
		{
			name:        "Success without data gets an empty payload",
			raw:         `{"success":true}`,
			wantSuccess: true,
			wantEvents:  0,
		},
		{
			name:        "Success drops a stray error",
			raw:         `{"success":true,"data":[{"id":"e1"}],"error":"ignored"}`,
			wantSuccess: true,
			wantEvents:  1,
		},
		{
			name:      "Failure with message only",
			raw:       `{"success":false,"message":"name is required"}`,
			wantError: "name is required",
		},
		{
			name:      "Failure prefers error over message",
			raw:       `{"success":false,"message":"bad request","error":"month must be between 1 and 12"}`,
			wantError: "month must be between 1 and 12",
		},
		{
			name:      "Failure drops data",
			raw:       `{"success":false,"data":[{"id":"e1"}]}`,
			wantError: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ApiResponse[[]Event]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &resp))

			resp = resp.Normalize()

			assert.Equal(t, tt.wantSuccess, resp.Success)
			if tt.wantSuccess {
				require.NotNil(t, resp.Data)
				assert.Len(t, *resp.Data, tt.wantEvents)
				assert.Empty(t, resp.Error)
			} else {
				assert.Nil(t, resp.Data)
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestApiResponse_Unwrap(t *testing.T) {
	event, err := Ok(Event{ID: "e1"}, "success").Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, "e1", event.ID)

	_, err = Fail[Event]("event not found").Unwrap()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.Equal(t, "event not found", err.Error())

	var failure *FailureError
	assert.True(t, errors.As(err, &failure))
	assert.Equal(t, "event not found", failure.Message)
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		response ApiResponse[Event]
		expected bool
	}{
		{name: "Remote 404", response: FailStatus[Event](http.StatusNotFound, "record gone"), expected: true},
		{name: "Remote 500 with not found text", response: FailStatus[Event](http.StatusInternalServerError, "event not found")},
		{name: "Local failure", response: Fail[Event]("event not found")},
		{name: "Success", response: Ok(Event{ID: "e1"}, "success")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.response.Unwrap()
			assert.Equal(t, tt.expected, IsNotFound(err))
		})
	}

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.True(t, IsNotFound(fmt.Errorf("load event: %w", &FailureError{Message: "x", Status: http.StatusNotFound})))
}

func TestEventCreateRequest_JSONSerialization(t *testing.T) {
	raw := `{"name":"Spring Fest 2025","description":"Poetry","start_date":"2025-03-10T09:00:00Z","end_date":"2025-03-12T18:00:00Z","year":2025,"month":3}`

	var req EventCreateRequest
	err := json.Unmarshal([]byte(raw), &req)

	assert.NoError(t, err)
	assert.Equal(t, "Spring Fest 2025", req.Name)
	assert.Equal(t, 2025, req.Year)
	assert.Equal(t, 3, req.Month)
	assert.Equal(t, 10, req.StartDate.Day())
	assert.Empty(t, req.Days)
}
