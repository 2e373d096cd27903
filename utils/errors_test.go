package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAPIError_PassesThrough(t *testing.T) {
	orig := ErrNotFound(CodePolicyNotFound, "policy not found")

	got := AsAPIError(orig)
	assert.Equal(t, CodePolicyNotFound, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestAsAPIError_Wrapped(t *testing.T) {
	orig := ErrConflict(CodeConsentAlreadyWithdrawn, "already withdrawn")
	wrapped := fmt.Errorf("withdraw: %w", orig)

	got := AsAPIError(wrapped)
	assert.Equal(t, CodeConsentAlreadyWithdrawn, got.Code)
	assert.Equal(t, http.StatusConflict, got.Status)
}

func TestAsAPIError_UnknownBecomesInternal(t *testing.T) {
	got := AsAPIError(errors.New("driver: bad connection"))
	assert.Equal(t, CodeInternalServerError, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.NotContains(t, got.Message, "driver")
}

func TestWithMetaDoesNotMutateOriginal(t *testing.T) {
	orig := ErrNotFound(CodePurposeNotFound, "unknown purpose codes")
	withMeta := orig.WithMeta(map[string]interface{}{"codes": []string{"bogus"}})

	assert.Nil(t, orig.Meta)
	assert.NotNil(t, withMeta.Meta)
	assert.Equal(t, orig.Code, withMeta.Code)
}
