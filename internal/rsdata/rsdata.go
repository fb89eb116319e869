// Package rsdata defines the result envelope returned by every mutating
// endpoint and the typed error that carries a result code to the HTTP
// boundary.
//
// A result code has the form "<status>-<seq>", e.g. "201-1" or "403-2".
// The HTTP status of a response is always the numeric prefix of its code.
package rsdata

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RsData is the uniform response envelope.
type RsData struct {
	ResultCode string `json:"resultCode"`
	Msg        string `json:"msg"`
	Data       any    `json:"data,omitempty"`
}

func Of(code, msg string) RsData {
	return RsData{ResultCode: code, Msg: msg}
}

func OfData(code, msg string, data any) RsData {
	return RsData{ResultCode: code, Msg: msg, Data: data}
}

// StatusCode returns the HTTP status encoded in the result code. Codes
// that do not start with a valid status map to 500.
func (r RsData) StatusCode() int {
	return StatusOf(r.ResultCode)
}

// IsSuccess reports whether the code denotes a 2xx/3xx outcome.
func (r RsData) IsSuccess() bool {
	return r.StatusCode() < http.StatusBadRequest
}

func StatusOf(code string) int {
	head, _, _ := strings.Cut(code, "-")
	status, err := strconv.Atoi(head)
	if err != nil || status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// Error is a failure that already knows which envelope it turns into.
type Error struct {
	Code string
	Msg  string
	Err  error
}

func NewError(code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap attaches an underlying cause that is logged but never sent to clients.
func Wrap(code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Msg, e.Err)
	}
	return e.Code + " " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return StatusOf(e.Code)
}

func (e *Error) RsData() RsData {
	return Of(e.Code, e.Msg)
}

// AsError extracts an *Error from anywhere in err's chain.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// HasCode reports whether err carries the given result code.
func HasCode(err error, code string) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}
