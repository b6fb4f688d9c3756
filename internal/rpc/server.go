package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"council/internal/logging"
)

const (
	jsonRPCVersion = "2.0"
	maxMessageSize = 10 * 1024 * 1024
)

const (
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorPayload   `json:"error,omitempty"`
}

type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error is a handler failure destined for the error member of a response.
// A zero Code is sent as CodeInternalError.
type Error struct {
	Code    int
	Message string
}

func Errorf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

type Handler func(ctx context.Context, params json.RawMessage) (any, *Error)

// Server reads one JSON-RPC message per line from its input stream and
// writes one response line per true request. Handlers run synchronously:
// the next line is not read until the current one is fully handled.
type Server struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	handlers map[string]Handler
	logger   *slog.Logger
}

func NewServer(r io.Reader, w io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		reader:   bufio.NewReader(r),
		writer:   bufio.NewWriter(w),
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

func (s *Server) Register(method string, handler Handler) {
	s.handlers[method] = handler
}

func (s *Server) Serve(ctx context.Context) error {
	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Error("rpc.read_failed", "error", err.Error())
			return err
		}
		atEOF := errors.Is(err, io.EOF)
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			s.handleLine(ctx, line)
		}
		if atEOF {
			return nil
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	if len(line) > maxMessageSize {
		s.logger.Warn("rpc.message_too_large", "bytes", len(line))
		return
	}
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		// Malformed input is logged and dropped without a response.
		s.logger.Warn("rpc.invalid_json", "error", err.Error())
		return
	}

	notification := isNotificationID(req.ID)
	if notification && req.ID != nil {
		s.logger.Warn("rpc.invalid_id_treated_as_notification", "id", string(req.ID))
	}

	handler, ok := s.handlers[req.Method]
	if !ok {
		s.logger.Warn("rpc.method_not_found", "method", req.Method)
		if !notification {
			s.sendError(req.ID, CodeMethodNotFound, "Method not found: "+req.Method)
		}
		return
	}

	s.logger.Debug("rpc.request", "method", req.Method, "id", string(req.ID))
	result, handlerErr := handler(ctx, req.Params)
	if notification {
		if handlerErr != nil {
			s.logger.Error("rpc.notification_failed", "method", req.Method, "error", handlerErr.Message)
		}
		return
	}
	if handlerErr != nil {
		code := handlerErr.Code
		if code == 0 {
			code = CodeInternalError
		}
		s.logger.Error("rpc.response_error", "method", req.Method, "id", string(req.ID), "error", handlerErr.Message)
		s.sendError(req.ID, code, handlerErr.Message)
		return
	}
	s.send(Response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: result})
}

// isNotificationID reports whether id marks the message as a notification.
// Only a bare string or number id makes a true request; absent, null,
// boolean, array and object ids are all treated as notifications.
func isNotificationID(id json.RawMessage) bool {
	trimmed := bytes.TrimSpace(id)
	if len(trimmed) == 0 {
		return true
	}
	switch trimmed[0] {
	case '"':
		return false
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return false
	default:
		return true
	}
}

func (s *Server) sendError(id json.RawMessage, code int, message string) {
	s.send(Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &ErrorPayload{Code: code, Message: message},
	})
}

func (s *Server) send(payload Response) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("rpc.marshal_failed", "error", err.Error())
		return
	}
	_, _ = s.writer.Write(append(data, '\n'))
	_ = s.writer.Flush()
}
