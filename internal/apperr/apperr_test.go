package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("delete server 7: %w", Storage(cause, "failed to delete server"))

	assert.True(t, IsStorage(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "delete server 7: failed to delete server: connection refused", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindDuplicateID, KindOf(DuplicateID(3)))
	assert.Equal(t, KindNotFound, KindOf(NotFound(3)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestFieldsOf(t *testing.T) {
	err := Validation("invalid server", FieldError{Field: "firstName", Message: "must not be blank"})

	fields := FieldsOf(err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "firstName", fields[0].Field)
	assert.Nil(t, FieldsOf(NotFound(1)))
	assert.Equal(t, "invalid server", err.Error())
}
