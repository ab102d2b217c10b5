package httputil_test

import (
	"net"
	"net/http"
	"testing"
	"time"

	httputil "github.com/nspcc-dev/scull/pkg/util/http"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidParams(t *testing.T) {
	h := http.NotFoundHandler()

	require.Panics(t, func() { httputil.New(httputil.Prm{Handler: h}) })
	require.Panics(t, func() { httputil.New(httputil.Prm{Address: "localhost:0"}) })
	require.Panics(t, func() {
		httputil.New(httputil.Prm{Address: "localhost:0", Handler: h}, httputil.WithShutdownTimeout(0))
	})
}

func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestServer(t *testing.T) {
	addr := freeAddress(t)

	srv := httputil.New(httputil.Prm{
		Address: addr,
		Handler: httputil.Handler(),
	}, httputil.WithShutdownTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/debug/pprof/cmdline")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown())
	require.NoError(t, <-errCh)
}
