package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/html5lint/pkg/scanner"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers lint requests read line by line from in.
type Server struct {
	core    *scanner.Core
	checks  []string
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server. checks are the names of the
// enabled checks, announced in the ready response.
func NewServer(core *scanner.Core, checks []string, in io.Reader, out io.Writer) *Server {
	if checks == nil {
		checks = []string{}
	}
	return &Server{
		core:    core,
		checks:  checks,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case RequestLint:
		s.handleLint(req.Payload)
	case RequestLintBatch:
		s.handleLintBatch(req.Payload)
	case RequestClose:
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version, Checks: s.checks})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleLint(payload json.RawMessage) {
	var p LintPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(RequestLint, err.Error())
		return
	}

	result, err := s.core.Lint(p.Content, p.Source)
	if err != nil {
		s.sendError(RequestLint, err.Error())
		return
	}
	s.sendData(RequestLint, result)
}

func (s *Server) handleLintBatch(payload json.RawMessage) {
	var p LintBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(RequestLintBatch, err.Error())
		return
	}

	result, err := s.core.LintBatch(p.Items)
	if err != nil {
		s.sendError(RequestLintBatch, err.Error())
		return
	}
	s.sendData(RequestLintBatch, result)
}

func (s *Server) sendData(reqType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
