package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeExternalService, "meta api request failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeExternalService, GetCode(err))
	assert.Contains(t, err.Error(), "meta api request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternalError, "anything"))
	assert.NoError(t, Wrapf(nil, CodeInternalError, "anything %d", 1))
}

func TestGetCodeThroughWrappingChain(t *testing.T) {
	inner := InvalidInput("bad level")
	outer := fmt.Errorf("handler: %w", inner)
	assert.Equal(t, CodeInvalidInput, GetCode(outer))

	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("x")))
	assert.Equal(t, CodeExternalService, GetCode(ExternalService("x")))
	assert.Equal(t, CodeNotFound, GetCode(NotFound("session abc")))
	assert.Equal(t, "session abc", NotFound("session abc").Error())
}
