package utils

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode maps service errors to http responses.
// Incorrect password is answered with 200: clients match on the body text.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var withCode *internal_errors.ErrorWithStatusCode
	switch {
	case errors.As(err, &withCode):
		http.Error(w, withCode.Message, withCode.StatusCode)
	case errors.Is(err, internal_errors.ErrNotFound):
		http.Error(w, internal_errors.ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, internal_errors.ErrIncorrectPassword):
		WriteText(w, internal_errors.ErrIncorrectPassword.Error())
	case errors.Is(err, internal_errors.ErrConflict):
		http.Error(w, internal_errors.ErrConflict.Error(), http.StatusConflict)
	default:
		// default error is 500
		logger.Log.Error("request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func WriteText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// cap for json and form bodies alike
const maxBodySize = 1 << 20

// DecodeRequest reads a json or an url-encoded form body into body and validates it.
// Form fields are matched against the json tags of body. Forms are read for
// every method, DELETE included.
func DecodeRequest(r *http.Request, body any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var values url.Values
	switch mediaType {
	case "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err == nil {
			values, err = url.ParseQuery(string(raw))
		}
		if err != nil {
			logger.Log.Debug("failed to parse form", "error", err)
			return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid form", StatusCode: http.StatusBadRequest}
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			logger.Log.Debug("failed to parse multipart form", "error", err)
			return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid form", StatusCode: http.StatusBadRequest}
		}
		values = r.MultipartForm.Value
	default:
		return DecodeValidate(http.MaxBytesReader(nil, r.Body, maxBodySize), body)
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = strings.TrimSpace(values.Get(key))
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return DecodeValidate(io.NopCloser(strings.NewReader(string(raw))), body)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("failed to decode body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("body validation failed", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}
