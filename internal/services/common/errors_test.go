package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errKind  = errors.New("kind")
	errCause = errors.New("cause")
)

func TestOpError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *OpError
		want string
	}{
		{name: "op only", err: NewOpError("read", nil, nil), want: "read"},
		{name: "kind only", err: NewOpError("read", errKind, nil), want: "read: kind"},
		{name: "cause only", err: NewOpError("read", nil, errCause), want: "read: cause"},
		{name: "kind and cause", err: NewOpError("read", errKind, errCause), want: "read: kind: cause"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestOpError_MatchesKindAndCause(t *testing.T) {
	err := fmt.Errorf("startup: %w", NewOpError("probe", errKind, errCause))

	assert.ErrorIs(t, err, errKind)
	assert.ErrorIs(t, err, errCause)
	assert.Equal(t, "probe", Operation(err))
	assert.Equal(t, "", Operation(errCause))
}
