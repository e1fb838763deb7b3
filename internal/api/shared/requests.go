package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps the JSON body read by DecodeJSON. It protects the
// server from unbounded uploads; notes themselves have no length limit.
const MaxRequestBodyBytes = 8 << 20

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds
// MaxRequestBodyBytes.
var ErrBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", MaxRequestBodyBytes)

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into v. A body larger than
// MaxRequestBodyBytes fails with ErrBodyTooLarge rather than being cut off.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)).Decode(v)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge
	}
	return err
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}
