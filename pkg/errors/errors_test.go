package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrAppNotInstalled, "host app missing")

	assert.Equal(t, ErrAppNotInstalled, err.Code)
	assert.Contains(t, err.Error(), "APP_NOT_INSTALLED")
	assert.Contains(t, err.Error(), "host app missing")
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap(inner, ErrReadinessTimeout, "probe failed")

	assert.Equal(t, ErrReadinessTimeout, err.Code)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nothing %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrAddonInstall, "install failed: %s", "no release")

	assert.True(t, IsErrorCode(err, ErrAddonInstall))
	assert.False(t, IsErrorCode(err, ErrConnectionInfo))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrAddonInstall))

	// code survives wrapping in plain errors
	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsErrorCode(wrapped, ErrAddonInstall))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrConnectionInfo, GetErrorCode(New(ErrConnectionInfo, "bad file")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrReleaseLookup, "lookup failed").WithDetail("url", "http://example.com")
	assert.Equal(t, "http://example.com", err.Details["url"])
}
