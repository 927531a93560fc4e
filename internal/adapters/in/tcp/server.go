package tcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"

	"restaurant/pkg/proto"
)

// Submitter queues decoded requests for execution. The server never executes
// commands itself.
type Submitter interface {
	Submit(ctx context.Context, req proto.Request) error
}

// Server is the connection multiplexer. It accepts TCP clients, assigns each
// a stable numeric identity, funnels their decoded requests into the
// submitter and routes finished replies back by that identity. Transport
// failures stay local: a dying connection is torn down and forgotten without
// touching its siblings or the executor.
type Server struct {
	submitter Submitter
	log       *slog.Logger

	mu     sync.Mutex
	conns  map[int]*clientConn
	nextID int

	listener net.Listener
	wg       sync.WaitGroup
}

type clientConn struct {
	id   int
	raw  net.Conn
	out  chan proto.Reply
	once sync.Once
}

// NewServer creates a server feeding the given submitter.
func NewServer(submitter Submitter, log *slog.Logger) *Server {
	return &Server{
		submitter: submitter,
		log:       log.With("component", "tcp"),
		conns:     make(map[int]*clientConn),
		nextID:    1,
	}
}

// Serve accepts connections on the listener until ctx is cancelled. It owns
// the listener and closes it on the way out.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.listener = listener

	go func() {
		<-ctx.Done()
		listener.Close()
		s.closeAll()
	}()

	for {
		raw, err := listener.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		c := s.register(raw)
		s.wg.Add(2)
		go s.readLoop(ctx, c)
		go s.writeLoop(c)
	}
}

// Reply routes a finished reply to its connection. A reply for a connection
// that is already gone is dropped.
func (s *Server) Reply(connID int, reply proto.Reply) {
	// The send happens under the same lock that guards the close in drop, so
	// a reply never hits a closed channel.
	s.mu.Lock()
	c, ok := s.conns[connID]
	wedged := false
	if ok {
		select {
		case c.out <- reply:
		default:
			wedged = true
		}
	}
	s.mu.Unlock()

	if wedged {
		// The writer is stuck. Cut the connection rather than block the
		// executor.
		s.log.Warn("slow consumer, dropping connection", "conn", connID)
		s.drop(c)
	}
}

func (s *Server) register(raw net.Conn) *clientConn {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	c := &clientConn{id: id, raw: raw, out: make(chan proto.Reply, 8)}
	s.conns[id] = c
	s.mu.Unlock()

	s.log.Info("connection accepted", "conn", id, "remote", raw.RemoteAddr().String())
	return c
}

func (s *Server) drop(c *clientConn) {
	c.once.Do(func() {
		s.mu.Lock()
		delete(s.conns, c.id)
		close(c.out)
		s.mu.Unlock()

		c.raw.Close()
		s.log.Info("connection closed", "conn", c.id)
	})
}

func (s *Server) closeAll() {
	s.mu.Lock()
	conns := make([]*clientConn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		s.drop(c)
	}
}

func (s *Server) readLoop(ctx context.Context, c *clientConn) {
	defer s.wg.Done()
	defer s.drop(c)

	if err := proto.WriteConnected(c.raw, c.id); err != nil {
		s.log.Warn("handshake failed", "conn", c.id, "error", err)
		return
	}

	reader := bufio.NewReader(c.raw)
	for {
		req, err := proto.ReadRequest(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Warn("read failed", "conn", c.id, "error", err)
			}
			return
		}

		// The connection's identity is authoritative, whatever the header
		// claimed.
		req.ConnID = c.id
		if err = s.submitter.Submit(ctx, req); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(c *clientConn) {
	defer s.wg.Done()

	for reply := range c.out {
		if err := proto.WriteReply(c.raw, reply); err != nil {
			s.log.Warn("write failed", "conn", c.id, "error", err)
			s.drop(c)
			return
		}
	}
}
