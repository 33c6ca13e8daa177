package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("title", "missing required field 'title' in entry #%d", 2)
	assert.Equal(t, "title: missing required field 'title' in entry #2", err.Error())
	assert.True(t, IsValidation(err))

	bare := Validation("", "invalid request body")
	assert.Equal(t, "invalid request body", bare.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("pending news", uint64(7))
	assert.Equal(t, "pending news 7 not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestUpstream(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("heyzine", "request failed", cause)
	assert.Equal(t, "heyzine: request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	noCause := Upstream("gemini", "status 429", nil)
	assert.Equal(t, "gemini: status 429", noCause.Error())
}

func TestUpstreamDetail(t *testing.T) {
	err := &UpstreamError{Service: "heyzine", Message: "rejected", Detail: `{"code":"-210"}`}
	assert.Equal(t, `{"code":"-210"}`, UpstreamDetail(err))

	wrapped := fmt.Errorf("convert: %w", err)
	assert.Equal(t, `{"code":"-210"}`, UpstreamDetail(wrapped))

	assert.Empty(t, UpstreamDetail(errors.New("plain")))
}

func TestIntegrity(t *testing.T) {
	err := Integrity("main_page", "rendered PDF is suspiciously small (%d bytes)", 12)
	assert.Equal(t, "artifact main_page: rendered PDF is suspiciously small (12 bytes)", err.Error())
	assert.True(t, IsIntegrity(err))

	wrapped := fmt.Errorf("assemble: %w", err)
	assert.True(t, IsIntegrity(wrapped))
}
