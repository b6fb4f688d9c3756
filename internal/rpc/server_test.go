package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func serve(t *testing.T, input string, register func(*Server)) []string {
	t.Helper()
	var output bytes.Buffer
	server := NewServer(strings.NewReader(input), &output, nil)
	register(server)
	if err := server.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	raw := strings.TrimSpace(output.String())
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func TestServerHandlesRequest(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"ping\"}\n"
	lines := serve(t, input, func(s *Server) {
		s.Register("ping", func(ctx context.Context, params json.RawMessage) (any, *Error) {
			return map[string]any{"pong": true}, nil
		})
	})
	if len(lines) != 1 {
		t.Fatalf("expected 1 response line, got %d", len(lines))
	}
	var resp Response
	if err := json.Unmarshal([]byte(lines[0]), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	if string(resp.ID) != "1" {
		t.Fatalf("expected id echoed, got %q", resp.ID)
	}
	result := resp.Result.(map[string]any)
	if result["pong"] != true {
		t.Fatalf("expected pong true")
	}
}

func TestServerNotificationsNeverRespond(t *testing.T) {
	inputs := []string{
		"{\"jsonrpc\":\"2.0\",\"method\":\"ping\"}",
		"{\"jsonrpc\":\"2.0\",\"id\":null,\"method\":\"ping\"}",
		"{\"jsonrpc\":\"2.0\",\"id\":true,\"method\":\"ping\"}",
		"{\"jsonrpc\":\"2.0\",\"id\":[1],\"method\":\"ping\"}",
		"{\"jsonrpc\":\"2.0\",\"id\":{\"a\":1},\"method\":\"ping\"}",
		"{\"jsonrpc\":\"2.0\",\"id\":false,\"method\":\"missing\"}",
	}
	lines := serve(t, strings.Join(inputs, "\n")+"\n", func(s *Server) {
		s.Register("ping", func(ctx context.Context, params json.RawMessage) (any, *Error) {
			return nil, Errorf(0, "handler failure")
		})
	})
	if len(lines) != 0 {
		t.Fatalf("expected no output for notifications, got %v", lines)
	}
}

func TestServerMethodNotFound(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":\"abc\",\"method\":\"nope\"}\n"
	lines := serve(t, input, func(s *Server) {})
	if len(lines) != 1 {
		t.Fatalf("expected 1 response line, got %d", len(lines))
	}
	var resp Response
	if err := json.Unmarshal([]byte(lines[0]), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Fatalf("expected -32601, got %+v", resp.Error)
	}
	if !strings.Contains(resp.Error.Message, "nope") {
		t.Fatalf("expected method name in message, got %q", resp.Error.Message)
	}
}

func TestServerHandlerErrorMapsToInternal(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":7,\"method\":\"boom\"}\n"
	lines := serve(t, input, func(s *Server) {
		s.Register("boom", func(ctx context.Context, params json.RawMessage) (any, *Error) {
			return nil, Errorf(0, "it broke")
		})
	})
	var resp Response
	if err := json.Unmarshal([]byte(lines[0]), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != CodeInternalError {
		t.Fatalf("expected -32603, got %+v", resp.Error)
	}
}

func TestServerDropsMalformedAndBlankLines(t *testing.T) {
	input := "\n   \nnot json at all\n{\"jsonrpc\":\"2.0\",\"id\":2,\"method\":\"ping\"}\n"
	lines := serve(t, input, func(s *Server) {
		s.Register("ping", func(ctx context.Context, params json.RawMessage) (any, *Error) {
			return map[string]any{}, nil
		})
	})
	if len(lines) != 1 {
		t.Fatalf("expected exactly one response, got %d", len(lines))
	}
}

func TestIsNotificationID(t *testing.T) {
	notifications := []string{"", "null", "true", "false", "[1,2]", "{\"k\":1}"}
	for _, id := range notifications {
		var raw json.RawMessage
		if id != "" {
			raw = json.RawMessage(id)
		}
		if !isNotificationID(raw) {
			t.Fatalf("expected %q to classify as notification", id)
		}
	}
	requests := []string{"1", "-5", "\"req-9\"", "0"}
	for _, id := range requests {
		if isNotificationID(json.RawMessage(id)) {
			t.Fatalf("expected %q to classify as request", id)
		}
	}
}
