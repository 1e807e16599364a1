package transport

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"time"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/sync/errgroup"
)

// Server accepts connections and dispatches framed rex messages against
// a MessageDescriptorRegistry.
type Server struct {
	MessageOverflowPolicy MessageOverflowPolicy
	MaxMessageSize        uint32
	Registry              *MessageDescriptorRegistry

	listener net.Listener
	group    *errgroup.Group
	ctx      context.Context
}

// Init validates configuration and prepares the registry. On
// misconfiguration it exits the process through log.Fatal, the same
// fail-fast startup style the demo server's main uses.
func (s *Server) Init() {
	if s.MessageOverflowPolicy != MessageOverflowDiscard && s.MessageOverflowPolicy != MessageOverflowTerminate {
		log.Fatal(goerrors.New(ErrCodeBadOverflowPolicy, "overflow policy must be Discard or Terminate"))
	}
	if s.Registry == nil {
		s.Registry = NewRegistry()
	}
}

// ListenAndServe opens network/address and serves on it until the
// listener is closed.
func (s *Server) ListenAndServe(network, address string) error {
	listener, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on an already-open listener until it is
// closed, dispatching each to its own goroutine managed by an
// errgroup.Group so a single connection's error doesn't bring down the
// others. Callers that need the bound address before Serve blocks
// (tests, ephemeral ports) should open their own net.Listener and pass
// it here instead of going through ListenAndServe.
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	defer listener.Close()

	ctx := context.Background()
	group, groupCtx := errgroup.WithContext(ctx)
	s.group = group
	s.ctx = groupCtx

	log.Print("rex transport listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			var netErr net.Error
			if ok := errors.As(err, &netErr); ok && netErr.Timeout() {
				log.Printf("temporary error accepting connection: %v", err)
				time.Sleep(3 * time.Second)
				continue
			}
			log.Printf("permanent error accepting connection: %v", err)
			return err
		}

		s.group.Go(func() error {
			s.handleConnection(conn)
			return nil
		})
	}

	log.Print("rex transport shutting down, waiting for connections to drain")
	return s.group.Wait()
}

// Close stops accepting new connections. In-flight connections are
// allowed to finish; call ListenAndServe's returned Wait semantics by
// letting ListenAndServe itself return.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConnection(netConn net.Conn) {
	log.Print("connection opened")
	defer netConn.Close()

	c := &Conn{server: s, conn: netConn, state: ConnWaitHello}

	for {
		if err := c.nextMessage(); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("connection error: %v", err)
			}
			break
		}
	}

	log.Print("connection closed")
}
