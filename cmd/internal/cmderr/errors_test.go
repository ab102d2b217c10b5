package cmderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitErr(t *testing.T) {
	cause := errors.New("device is busy")
	err := fmt.Errorf("stress: %w", ExitErr{Code: 2, Cause: cause})

	var e ExitErr
	require.ErrorAs(t, err, &e)
	require.Equal(t, 2, e.Code)
	require.Equal(t, "device is busy", e.Error())
	require.ErrorIs(t, err, cause)
}
