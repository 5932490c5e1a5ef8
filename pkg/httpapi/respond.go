package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/observability"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

var statusByCode = map[errors.Code]int{
	errors.ErrCodeInvalidInput:    http.StatusBadRequest,
	errors.ErrCodeInvalidDocument: http.StatusBadRequest,
	errors.ErrCodeInvalidConfig:   http.StatusBadRequest,
	errors.ErrCodeInvalidPath:     http.StatusBadRequest,
	errors.ErrCodeInvalidGraph:    http.StatusUnprocessableEntity,
	errors.ErrCodeNotFound:        http.StatusNotFound,
	errors.ErrCodeFileNotFound:    http.StatusNotFound,
	errors.ErrCodeUnsupported:     http.StatusNotImplemented,
}

// statusFor maps a coded error to an HTTP status.
func statusFor(err error) int {
	if status, ok := statusByCode[errors.GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := errors.CodeOf(err)
	writeJSON(w, statusFor(err), errorBody{Error: errorDetail{
		Code:    code,
		Message: strings.TrimPrefix(err.Error(), string(code)+": "),
	}})
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

// editError codes a failed edit by its sentinel.
func editError(err error) error {
	switch {
	case stderrors.Is(err, quest.ErrUnknownNode), stderrors.Is(err, quest.ErrUnknownHandle):
		return errors.Wrap(errors.ErrCodeNotFound, err, "apply")
	default:
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "apply")
	}
}
