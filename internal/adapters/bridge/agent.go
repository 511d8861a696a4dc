// Package bridge owns the duplex connection to the host. One receive
// loop decodes inbound frames and fans each binary frame out to its
// own dispatch goroutine; one send loop serializes every outbound
// frame through a bounded FIFO queue so frames are never interleaved
// on the wire.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// outboundQueueSize bounds the pending outbound frames. A full queue
// suspends dispatch goroutines on enqueue until the send loop drains
// it; this is the sole backpressure mechanism.
const outboundQueueSize = 128

// Handler turns one inbound binary payload into one outbound binary
// payload. Implementations map their own failures into response
// payloads; an error return means the payload was not decodable at
// all and nothing can be sent for it.
type Handler interface {
	Dispatch(ctx context.Context, payload []byte) ([]byte, error)
}

// frame is one queued outbound websocket message.
type frame struct {
	kind int
	data []byte
}

// link is the state of one live connection. It is created per Run so
// a dispatch goroutine left over from a dead connection can never
// enqueue into a later one.
type link struct {
	sock     *websocket.Conn
	outbound chan frame
	done     chan struct{}
	once     sync.Once
}

// finish marks the connection dead exactly once.
func (l *link) finish() {
	l.once.Do(func() {
		close(l.done)
	})
}

// enqueue appends a frame to the outbound queue, blocking while the
// queue is full. Returns false once the connection has ended; sending
// to a dead link is a no-op, never a panic.
func (l *link) enqueue(f frame) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.outbound <- f:
		return true
	case <-l.done:
		return false
	}
}

// Builder assembles an Agent. Host and handler are mandatory.
type Builder struct {
	name    string
	host    string
	handler Handler
	logger  *slog.Logger
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) Host(addr string) *Builder {
	b.host = addr
	return b
}

func (b *Builder) Handler(h Handler) *Builder {
	b.handler = h
	return b
}

func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) Build() (*Agent, error) {
	if b.host == "" {
		return nil, errors.New("bridge: host address is required")
	}
	if b.handler == nil {
		return nil, errors.New("bridge: handler is required")
	}
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		name:    b.name,
		host:    b.host,
		handler: b.handler,
		logger:  logger,
	}, nil
}

// Agent is the campus-side node of one host connection. Run owns the
// connection for its whole lifetime; a terminal I/O error ends it and
// the caller decides whether to reconnect.
type Agent struct {
	name    string
	host    string
	handler Handler
	logger  *slog.Logger
}

// Run dials the host and serves the connection until it dies or ctx is
// cancelled. In-flight dispatches are abandoned when the connection
// ends; their enqueue attempts fail silently.
func (a *Agent) Run(ctx context.Context) error {
	header := http.Header{}
	header.Set("X-Agent-Name", a.name)

	sock, resp, err := websocket.DefaultDialer.DialContext(ctx, a.host, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connect to host %s (status %s): %w", a.host, resp.Status, err)
		}
		return fmt.Errorf("connect to host %s: %w", a.host, err)
	}

	l := &link{
		sock:     sock,
		outbound: make(chan frame, outboundQueueSize),
		done:     make(chan struct{}),
	}

	a.logger.Info("connected to host", "host", a.host, "agent", a.name)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sendLoop(l)
	}()

	// Close the socket when ctx is cancelled so the blocked read
	// returns.
	stop := context.AfterFunc(ctx, func() {
		l.finish()
		_ = sock.Close()
	})
	defer stop()

	err = a.receiveLoop(ctx, l)

	l.finish()
	_ = sock.Close()
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

// receiveLoop consumes inbound frames in arrival order. Binary frames
// fan out to dispatch goroutines so a slow campus call never stalls
// receipt; unexpected application frames trigger a close frame. Ping
// frames are answered by the websocket library's default handler and
// never reach this switch.
func (a *Agent) receiveLoop(ctx context.Context, l *link) error {
	for {
		kind, payload, err := l.sock.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				a.logger.Info("host closed connection", "code", closeErr.Code)
				return nil
			}
			return fmt.Errorf("read host frame: %w", err)
		}

		switch kind {
		case websocket.BinaryMessage:
			go a.dispatch(ctx, l, payload)
		default:
			// Text frames are not part of the protocol.
			a.logger.Warn("unexpected frame type from host", "type", kind)
			l.enqueue(frame{
				kind: websocket.CloseMessage,
				data: websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "binary frames only"),
			})
		}
	}
}

// sendLoop is the single consumer of the outbound queue: frames hit
// the wire strictly in enqueue order. A write failure kills the
// connection.
func (a *Agent) sendLoop(l *link) {
	for {
		select {
		case <-l.done:
			return
		case f := <-l.outbound:
			if err := l.sock.WriteMessage(f.kind, f.data); err != nil {
				a.logger.Error("write to host", "error", err)
				l.finish()
				_ = l.sock.Close()
				return
			}
		}
	}
}

// dispatch runs one request through the handler and queues its
// response. Errors here never touch other in-flight dispatches.
func (a *Agent) dispatch(ctx context.Context, l *link, payload []byte) {
	response, err := a.handler.Dispatch(ctx, payload)
	if err != nil {
		a.logger.Warn("drop undecodable frame", "error", err)
		return
	}

	if !l.enqueue(frame{kind: websocket.BinaryMessage, data: response}) {
		a.logger.Debug("connection ended before response could be queued")
	}
}
