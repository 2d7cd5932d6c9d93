// Package validation checks request payloads and configuration.
//
// Struct tags are checked with go-playground/validator:
//
//	type keyPointsRequest struct {
//	    Transcription string `json:"transcription" validate:"required"`
//	}
//	err := validation.Validate(req)
//
// Single values use the collecting Validator:
//
//	err := validation.New().Required("id", id).HexID("id", id, 32).Validate()
//
// Both return *errors.AppError values carrying the failing fields in
// Details["fields"].
package validation
