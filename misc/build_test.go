package misc

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInfo(t *testing.T) {
	info := BuildInfo("scull")

	require.True(t, strings.HasPrefix(info, "scull\n"))
	require.Contains(t, info, "Version: "+Version)
	require.Contains(t, info, runtime.Version())
}
