package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := E(CodeUnauthenticated, "auth.login", "login rejected with status 401", nil)
	assert.Equal(t, "auth.login: UNAUTHENTICATED: login rejected with status 401", err.Error())

	bare := E(CodeInternal, "", "", nil)
	assert.Equal(t, "INTERNAL", bare.Error())
}

func TestWrapKeepsExistingOp(t *testing.T) {
	inner := E(CodeNotFound, "toolset.lookup", "", ErrToolNotFound)
	wrapped := Wrap(CodeInternal, "toolset.dispatch", fmt.Errorf("ctx: %w", inner))

	require.NotNil(t, wrapped)
	assert.Equal(t, CodeNotFound, wrapped.Code)
	assert.Equal(t, "toolset.lookup", wrapped.Op)
	assert.True(t, errors.Is(wrapped, ErrToolNotFound))
}

func TestCodeFrom(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{ErrToolNotFound, CodeNotFound},
		{fmt.Errorf("x: %w", ErrMissingArgument), CodeInvalidArgument},
		{ErrLoginRejected, CodeUnauthenticated},
		{context.Canceled, CodeCanceled},
		{E(CodeUnavailable, "op", "down", nil), CodeUnavailable},
	}
	for _, tc := range cases {
		got, ok := CodeFrom(tc.err)
		require.True(t, ok, tc.err.Error())
		assert.Equal(t, tc.want, got)
	}

	_, ok := CodeFrom(errors.New("plain"))
	assert.False(t, ok)
}
