package progress

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gogpu/z0matrix"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Broadcaster streams progress events to WebSocket clients as JSON.
//
// Each client gets the most recent event; a client that reads slowly skips
// intermediate events but always receives the last one. A client that
// connects mid-run first receives the current state.
type Broadcaster struct {
	// OriginPatterns lists the accepted Origin hosts. Empty allows the
	// request's own host only.
	OriginPatterns []string

	mu      sync.Mutex
	clients map[*subscriber]struct{}
	last    *Event
	closed  bool
}

type subscriber struct {
	events chan Event // latest value only
	done   chan struct{}
}

// NewBroadcaster returns a Broadcaster with no clients.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*subscriber]struct{})}
}

// Report implements z0matrix.Progress.
func (b *Broadcaster) Report(done, total int) {
	e := NewEvent(done, total)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = &e
	for s := range b.clients {
		s.push(e)
	}
}

// push replaces any pending event with e. Callers hold the Broadcaster
// lock, so there is a single sender.
func (s *subscriber) push(e Event) {
	select {
	case <-s.events:
	default:
	}
	s.events <- e
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) subscribe() (*subscriber, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, false
	}
	if b.clients == nil {
		b.clients = make(map[*subscriber]struct{})
	}
	s := &subscriber{events: make(chan Event, 1), done: make(chan struct{})}
	if b.last != nil {
		s.events <- *b.last
	}
	b.clients[s] = struct{}{}
	return s, true
}

func (b *Broadcaster) unsubscribe(s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, s)
}

// Close disconnects every client after flushing its pending event and
// refuses new ones. Close is safe to call multiple times.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.clients {
		close(s.done)
	}
}

// ServeHTTP upgrades the request to a WebSocket and streams events until
// the run completes, the client goes away or the Broadcaster is closed.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: b.OriginPatterns,
	})
	if err != nil {
		z0matrix.Logger().Warn("progress: websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer func() { _ = c.CloseNow() }()

	s, ok := b.subscribe()
	if !ok {
		_ = c.Close(websocket.StatusGoingAway, "run finished")
		return
	}
	defer b.unsubscribe(s)

	// Clients never send; CloseRead handles control frames and cancels
	// ctx when the peer disconnects.
	ctx := c.CloseRead(r.Context())
	log := z0matrix.Logger().With("remote", r.RemoteAddr)
	log.Debug("progress: client connected")

	for {
		select {
		case e := <-s.events:
			if err := write(ctx, c, e); err != nil {
				log.Debug("progress: client dropped", "err", err)
				return
			}
			if e.Complete() {
				_ = c.Close(websocket.StatusNormalClosure, "done")
				return
			}
		case <-s.done:
			select {
			case e := <-s.events:
				_ = write(ctx, c, e)
			default:
			}
			_ = c.Close(websocket.StatusGoingAway, "shutting down")
			return
		case <-ctx.Done():
			return
		}
	}
}

func write(ctx context.Context, c *websocket.Conn, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, e)
}

// Serve listens on addr and serves b at every path until ctx is done.
// Bind errors are returned immediately.
func (b *Broadcaster) Serve(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("progress: listen %s: %w", addr, err)
	}
	return b.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. It closes ln.
func (b *Broadcaster) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           b,
		ReadHeaderTimeout: 5 * time.Second,
	}

	z0matrix.Logger().Info("progress: websocket listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		b.Close()
		return fmt.Errorf("progress: serve: %w", err)
	case <-ctx.Done():
	}

	b.Close()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("progress: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("progress: serve: %w", err)
	}
	return nil
}
