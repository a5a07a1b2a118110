package web

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestServiceServesUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "running")
	})

	s := NewService(ctx, "127.0.0.1:0", mux)
	require.NoError(t, s.Start())
	assert.Error(t, s.Start())

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + s.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "running", string(body))

	cancel()
	select {
	case err := <-s.Done():
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("web service did not stop")
	}
}

func TestServiceBindError(t *testing.T) {
	first := NewService(context.Background(), "127.0.0.1:0", http.NewServeMux())
	require.NoError(t, first.Start())
	defer func() {
		first.Stop()
		<-first.Done()
	}()

	second := NewService(context.Background(), first.Addr(), http.NewServeMux())
	assert.Error(t, second.Start())
	second.Cancel()
}
