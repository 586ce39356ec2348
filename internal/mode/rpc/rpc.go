// ABOUTME: RPC mode for external integrations (editor extensions)
// ABOUTME: JSONL-based protocol; requests are handled one at a time in arrival order

package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Server handles RPC requests from an external client.
type Server struct {
	reader  *bufio.Scanner
	writer  io.Writer
	handler func(context.Context, Request) Response
}

// NewServer creates an RPC server reading requests from r and writing
// responses to w.
func NewServer(r io.Reader, w io.Writer, handler func(context.Context, Request) Response) *Server {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	return &Server{
		reader:  scanner,
		writer:  w,
		handler: handler,
	}
}

// Run serves until the input ends or ctx is cancelled. Blank lines are skipped.
func (s *Server) Run(ctx context.Context) error {
	for s.reader.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := s.reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := s.write(Response{Error: NewParseError(fmt.Sprintf("parse error: %v", err))}); err != nil {
				return err
			}
			continue
		}

		var resp Response
		if req.Method == "" {
			resp = Response{Error: NewInvalidRequestError("missing method")}
		} else {
			resp = s.handler(ctx, req)
		}
		resp.ID = req.ID

		if err := s.write(resp); err != nil {
			return err
		}
	}

	return s.reader.Err()
}

func (s *Server) write(resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(Response{ID: resp.ID, Error: NewInternalError(fmt.Sprintf("internal error: %v", err))})
	}
	data = append(data, '\n')
	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
