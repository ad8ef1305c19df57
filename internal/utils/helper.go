package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	appErrors "github.com/cursedbuild/storefront/internal/errors"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/cursedbuild/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing the
// error response itself. Callers return when it reports false.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	logger := logging.FromContext(r.Context())

	if err := DecodeJSONBody(w, r, dest); err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			response.Error(w, appErrors.PayloadTooLargeError(err.Error()))
			return false
		}

		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation failed", "error", err.Error())
			response.ValidationError(w, validationErrs)
			return false
		}

		logger.Error("Unexpected validation error", "error", err.Error())
		response.Error(w, appErrors.InternalError("Failed to validate request").WithError(err))
		return false
	}

	return true
}

// ParseID reads a positive integer path value.
func ParseID(r *http.Request, name string) (int64, error) {

	raw := r.PathValue(name)
	if raw == "" {
		return 0, appErrors.BadRequestError(fmt.Sprintf("Missing %s", name))
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError(fmt.Sprintf("Invalid %s", name)).WithDetail(raw)
	}

	return id, nil
}
