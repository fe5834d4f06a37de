package eutils_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/bsfetch/pkg/eutils"
	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &eutils.TransportError{Op: "esearch", Err: cause}

	assert.Equal(t, "entrez esearch: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsTransport(t *testing.T) {
	te := &eutils.TransportError{Op: "efetch", Err: errors.New("boom")}

	tests := []struct {
		msg string
		err error
		res bool
	}{
		{"direct", te, true},
		{"wrapped", fmt.Errorf("attempt 2: %w", te), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, eutils.IsTransport(v.err), v.msg)
	}
}
