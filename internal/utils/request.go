package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("request body cannot be empty")
	ErrBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
)

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {

	logger := logging.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Request body too large", "limit", tooLarge.Limit, "endpoint", r.URL.Path)
			return ErrBodyTooLarge
		}

		logger.Error("Failed to read request body", "error", err.Error(), "endpoint", r.URL.Path)
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if len(data) == 0 {
		logger.Warn("Empty request body", "endpoint", r.URL.Path)
		return ErrEmptyBody
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Failed to parse request JSON", "error", err.Error(), "endpoint", r.URL.Path)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validationErrs
		}

		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return nil
}
