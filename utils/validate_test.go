package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("asha@example.com"))
	assert.True(t, ValidateEmail("  asha@example.com "))
	assert.False(t, ValidateEmail("asha@example"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+919876543210"))
	assert.True(t, ValidatePhone("919876543210"))
	assert.False(t, ValidatePhone("0123"))
	assert.False(t, ValidatePhone("phone"))
	assert.False(t, ValidatePhone(""))
}

func TestParseWorkerID(t *testing.T) {
	id, err := ParseWorkerID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseWorkerID("abc")
	assert.Error(t, err)
	_, err = ParseWorkerID("-1")
	assert.Error(t, err)
	_, err = ParseWorkerID("")
	assert.Error(t, err)
}
