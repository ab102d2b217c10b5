package logicerr_test

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/scull/pkg/util/logicerr"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := errors.New("bad offset")
	err := logicerr.Wrap(cause)

	require.ErrorIs(t, err, logicerr.Error)
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "logical error: bad offset")
}

func TestNewf(t *testing.T) {
	err := logicerr.Newf("quantum size %d", 0)

	require.ErrorIs(t, err, logicerr.Error)
	require.EqualError(t, err, "logical error: quantum size 0")
}
