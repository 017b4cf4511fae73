package mcp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/zhubert/jds-knowledge/logger"
)

// DefaultMaxMessageSize is the largest accepted request line in bytes, excluding the newline.
const DefaultMaxMessageSize = 1_000_000

// Server implements the newline-delimited JSON-RPC transport over a reader/writer pair.
// Requests are handled one at a time in arrival order.
type Server struct {
	reader         *bufio.Reader
	writer         io.Writer
	dispatcher     *Dispatcher
	maxMessageSize int
	mu             sync.Mutex
	log            *slog.Logger // Logger with session context
}

// ServerOption is a functional option for configuring Server
type ServerOption func(*Server)

// WithMaxMessageSize overrides DefaultMaxMessageSize. Non-positive values are ignored.
func WithMaxMessageSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxMessageSize = n
		}
	}
}

// NewServer creates a new MCP server
func NewServer(r io.Reader, w io.Writer, d *Dispatcher, sessionID string, opts ...ServerOption) *Server {
	s := &Server{
		reader:         bufio.NewReaderSize(r, 64*1024),
		writer:         w,
		dispatcher:     d,
		maxMessageSize: DefaultMaxMessageSize,
		log:            logger.WithSession(sessionID).With("component", "mcp"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the MCP server loop. It returns nil at EOF.
func (s *Server) Run() error {
	s.log.Info("server starting", "maxMessageSize", s.maxMessageSize, "tools", len(s.dispatcher.Tools().Definitions()))

	for {
		line, tooLarge, err := s.readLine()
		if err == io.EOF {
			s.log.Info("EOF received, shutting down")
			return nil
		}
		if err != nil {
			s.log.Error("read error", "error", err)
			return err
		}

		if tooLarge {
			s.log.Warn("message too large, discarded", "limit", s.maxMessageSize)
			s.send(errorResponse(nil, errTooLarge))
			continue
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		s.log.Debug("received message", "bytes", len(line))

		if resp := s.dispatcher.HandleMessage(line); resp != nil {
			s.send(resp)
		}
	}
}

// readLine reads through the next newline. Oversized lines are consumed
// and discarded without being buffered beyond the limit. A final line
// without a trailing newline is still returned.
func (s *Server) readLine() ([]byte, bool, error) {
	var line []byte
	n := 0
	for {
		chunk, err := s.reader.ReadSlice('\n')
		n += len(chunk)
		if n <= s.maxMessageSize+1 {
			line = append(line, chunk...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && n > 0 {
			err = nil
		}
		if err != nil {
			return nil, false, err
		}

		size := n
		if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
			size--
		}
		if size > s.maxMessageSize {
			return nil, true, nil
		}
		return line, false, nil
	}
}

func (s *Server) send(resp *JSONRPCResponse) {
	data, err := encodeJSON(resp, "")
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = fmt.Fprintf(s.writer, "%s\n", data)
	if err != nil {
		s.log.Error("failed to write response", "error", err)
	} else {
		s.log.Debug("sent response", "bytes", len(data))
	}
}
