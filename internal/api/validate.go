package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"workorder-service/internal/apperr"
	"workorder-service/internal/model"
)

type serverRequest struct {
	ID           *int64  `json:"id"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Availability *string `json:"availability"`
}

// validateServer checks the request body and returns the record to store.
func validateServer(req serverRequest) (model.ServerDTO, error) {
	var fields []apperr.FieldError
	check := func(name string, value *string, max int) string {
		switch {
		case value == nil || strings.TrimSpace(*value) == "":
			fields = append(fields, apperr.FieldError{Field: name, Message: "must not be null or blank"})
			return ""
		case utf8.RuneCountInString(*value) > max:
			fields = append(fields, apperr.FieldError{Field: name, Message: fmt.Sprintf("size must be at most %d characters", max)})
		}
		return *value
	}

	dto := model.ServerDTO{
		ID:           req.ID,
		FirstName:    check("firstName", req.FirstName, model.MaxFirstNameLen),
		LastName:     check("lastName", req.LastName, model.MaxLastNameLen),
		Availability: check("availability", req.Availability, model.MaxAvailabilityLen),
	}
	if len(fields) > 0 {
		return model.ServerDTO{}, apperr.Validation("invalid server", fields...)
	}
	return dto, nil
}
