package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	nf := fmt.Errorf("delete trip: %w", NotFoundError{Resource: "trip"})
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.False(t, IsInternal(nf))
	assert.EqualError(t, nf, "delete trip: trip not found")

	cause := errors.New("connection reset")
	internal := InternalError{Msg: "failed to list trips", Err: cause}
	assert.ErrorIs(t, internal, cause)
	assert.EqualError(t, internal, "failed to list trips", "cause must not leak into the message")
}

func TestRequired(t *testing.T) {
	err := Required("name")
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "name: required")
}
