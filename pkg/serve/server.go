package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/resast/resast"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming parser
type Server struct {
	parser  *resast.Parser
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(parser *resast.Parser, in io.Reader, out io.Writer) *Server {
	return &Server{
		parser:  parser,
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
	case "parse":
		s.handleParse(req.Payload)
	case "parse_batch":
		s.handleParseBatch(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleParse(payload json.RawMessage) {
	var p ParsePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("parse", err.Error())
		return
	}

	result := s.parser.ParseString(p.Content, p.Source)

	data, err := json.Marshal(result)
	if err != nil {
		s.sendError("parse", err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    "parse",
		Data:    data,
	})
}

func (s *Server) handleParseBatch(payload json.RawMessage) {
	var p ParseBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("parse_batch", err.Error())
		return
	}

	result := s.parser.ParseBatch(p.Items)

	data, err := json.Marshal(result)
	if err != nil {
		s.sendError("parse_batch", err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    "parse_batch",
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
