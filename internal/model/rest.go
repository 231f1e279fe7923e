package model

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// ErrRequestFailed is wrapped by Unwrap for every failed response.
var ErrRequestFailed = errors.New("request failed")

const genericFailure = "request failed"

// ApiResponse is the envelope every API call answers with.
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// Status is the HTTP status the envelope arrived with; 0 when it was
	// built locally.
	Status int `json:"-"`
}

// Empty is the payload of calls that return nothing meaningful, like delete.
type Empty struct{}

func Ok[T any](data T, message string) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Data:    &data,
		Message: message,
	}
}

func Fail[T any](err string) ApiResponse[T] {
	if strings.TrimSpace(err) == "" {
		err = genericFailure
	}
	return ApiResponse[T]{
		Success: false,
		Error:   err,
	}
}

// FailStatus is Fail for a failure the remote side answered with status.
func FailStatus[T any](status int, err string) ApiResponse[T] {
	r := Fail[T](err)
	r.Status = status
	return r
}

// Normalize restores the envelope invariant on a decoded response: a success
// always carries data and no error, a failure carries an error and no data.
func (r ApiResponse[T]) Normalize() ApiResponse[T] {
	if r.Success {
		if r.Data == nil {
			var zero T
			r.Data = &zero
		}
		r.Error = ""
		return r
	}
	r.Data = nil
	r.Error = r.ErrorMessage()
	return r
}

// ErrorMessage picks the text shown to the user for a failed response.
func (r ApiResponse[T]) ErrorMessage() string {
	if msg := strings.TrimSpace(r.Error); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Message); msg != "" {
		return msg
	}
	return genericFailure
}

// Unwrap returns the payload of a successful response, or an error wrapping
// ErrRequestFailed that carries the failure message.
func (r ApiResponse[T]) Unwrap() (T, error) {
	if r.Success && r.Data != nil {
		return *r.Data, nil
	}
	var zero T
	return zero, &FailureError{Message: r.ErrorMessage(), Status: r.Status}
}

// FailureError is the error form of a failed ApiResponse.
type FailureError struct {
	Message string
	Status  int
}

func (e *FailureError) Error() string {
	return e.Message
}

func (e *FailureError) Unwrap() error {
	return ErrRequestFailed
}

// IsNotFound reports whether err is a failed response the remote side
// answered with 404.
func IsNotFound(err error) bool {
	var failure *FailureError
	return errors.As(err, &failure) && failure.Status == http.StatusNotFound
}

// Success builds the untyped envelope handlers write to the wire.
func Success(data any, message string) ApiResponse[any] {
	return Ok[any](data, message)
}

// Failure builds the untyped failure envelope handlers write to the wire.
func Failure(err string) ApiResponse[any] {
	return Fail[any](err)
}

type EventCreateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Days        []EventDayCreate `json:"days,omitempty"`
}

type EventDayCreate struct {
	DayNumber   int             `json:"day_number"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Times       []SessionCreate `json:"times,omitempty"`
}

type SessionCreate struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Speaker     string    `json:"speaker"`
}
