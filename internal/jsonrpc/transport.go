package jsonrpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

// maxLineSize bounds a single newline-delimited message.
const maxLineSize = 4 << 20

// ErrLineTooLong is returned by ReadRequest when a message exceeds maxLineSize.
var ErrLineTooLong = errors.New("jsonrpc: message exceeds maximum line size")

// Transport reads requests and writes responses over a byte stream.
type Transport struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex
}

// NewTransport wraps an io.Reader and io.Writer as a JSON-RPC transport.
// Each JSON message is expected to be a single line terminated by newline.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	return &Transport{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ReadRequest reads one JSON-RPC request (newline-delimited JSON).
// It also returns the raw JSON bytes so callers can inspect the raw payload.
// Blank lines are skipped.
func (t *Transport) ReadRequest() (*Request, []byte, error) {
	for {
		line, err := t.readLine()
		if err != nil {
			return nil, nil, err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			return nil, line, fmt.Errorf("invalid JSON: %w", err)
		}
		return &req, line, nil
	}
}

func (t *Transport) readLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := t.reader.ReadSlice('\n')
		line = append(line, chunk...)
		if len(line) > maxLineSize {
			return nil, ErrLineTooLong
		}
		switch {
		case err == nil:
			return line, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(bytes.TrimSpace(line)) > 0:
			// Final message without a trailing newline.
			return line, nil
		default:
			return nil, err
		}
	}
}

// WriteResponse sends a JSON-RPC response (newline-delimited).
func (t *Transport) WriteResponse(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err = t.writer.Write(data)
	return err
}

// TCPListener listens for TCP connections and serves each with the given server.
type TCPListener struct {
	listener net.Listener
	server   *Server
}

// NewTCPListener creates a TCP listener on the given address.
func NewTCPListener(addr string, server *Server) (*TCPListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &TCPListener{listener: ln, server: server}, nil
}

// Addr returns the listener's network address.
func (tl *TCPListener) Addr() net.Addr {
	return tl.listener.Addr()
}

// Serve accepts connections in a loop. It blocks until the listener is
// closed, and closes the listener when ctx is done.
func (tl *TCPListener) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = tl.listener.Close()
	})
	defer stop()

	for {
		conn, err := tl.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func() {
			defer conn.Close() //nolint:errcheck
			closeConn := context.AfterFunc(ctx, func() { _ = conn.Close() })
			defer closeConn()
			_ = tl.server.ServeTransport(ctx, NewTransport(conn, conn))
		}()
	}
}

// Close shuts down the TCP listener.
func (tl *TCPListener) Close() error {
	return tl.listener.Close()
}
