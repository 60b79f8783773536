package http

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMalformedBody(t *testing.T) {
	err := ErrorMalformedBody{Err: io.ErrUnexpectedEOF}

	require.ErrorContains(t, err, "malformed request body: unexpected EOF", "TEST Failed.\n")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF, "TEST Failed.\n")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode(), "TEST Failed.\n")
}

func TestErrorNilRequest(t *testing.T) {
	var (
		err    error = ErrorNilRequest{}
		target ErrorNilRequest
	)

	require.ErrorContains(t, err, "no http request to snapshot", "TEST Failed.\n")
	assert.Equal(t, http.StatusInternalServerError, ErrorNilRequest{}.StatusCode(), "TEST Failed.\n")
	assert.True(t, errors.As(err, &target), "TEST Failed.\n")
}
