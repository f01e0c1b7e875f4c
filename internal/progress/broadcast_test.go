package progress

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(ctx context.Context, t *testing.T, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.CloseNow() })
	return c
}

// waitClients polls until b has n clients.
func waitClients(t *testing.T, b *Broadcaster, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return b.Clients() == n }, 2*time.Second, 5*time.Millisecond)
}

func TestBroadcaster_StreamsToCompletion(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	c := dial(ctx, t, srv.URL)
	waitClients(t, b, 1)

	for done := 1; done <= 10; done++ {
		b.Report(done, 10)
	}

	// Intermediate events may be skipped; the last one never is.
	var last Event
	prev := 0
	for !last.Complete() {
		require.NoError(t, wsjson.Read(ctx, c, &last))
		assert.Greater(t, last.Done, prev)
		prev = last.Done
	}
	assert.Equal(t, Event{Done: 10, Total: 10, Percent: 100}, last)

	// The server closes normally after the final event.
	var extra Event
	err := wsjson.Read(ctx, c, &extra)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
}

func TestBroadcaster_LateClientGetsCurrentState(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	b.Report(3, 8)

	c := dial(ctx, t, srv.URL)
	var e Event
	require.NoError(t, wsjson.Read(ctx, c, &e))
	assert.Equal(t, 3, e.Done)
	assert.Equal(t, 8, e.Total)
}

func TestBroadcaster_CloseFlushesPending(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	c := dial(ctx, t, srv.URL)
	waitClients(t, b, 1)

	b.Report(5, 10)
	b.Close()

	var e Event
	require.NoError(t, wsjson.Read(ctx, c, &e))
	assert.Equal(t, 5, e.Done)

	err := wsjson.Read(ctx, c, &e)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	// New clients are turned away.
	late := dial(ctx, t, srv.URL)
	err = wsjson.Read(ctx, late, &e)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
}

func TestBroadcaster_ClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	c := dial(ctx, t, srv.URL)
	waitClients(t, b, 1)

	require.NoError(t, c.Close(websocket.StatusNormalClosure, "bye"))
	waitClients(t, b, 0)

	// Reports after the client left must not block.
	b.Report(1, 2)
}

func TestBroadcaster_ServeListener(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	b := NewBroadcaster()
	errc := make(chan error, 1)
	go func() { errc <- b.ServeListener(ctx, ln) }()

	dialCtx, dialCancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer dialCancel()
	c := dial(dialCtx, t, "http://"+ln.Addr().String())
	waitClients(t, b, 1)

	b.Report(2, 2)
	var e Event
	require.NoError(t, wsjson.Read(dialCtx, c, &e))
	assert.True(t, e.Complete())

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeListener did not return after cancel")
	}
}

func TestBroadcaster_ServeBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = NewBroadcaster().Serve(t.Context(), ln.Addr().String())
	assert.Error(t, err)
}
