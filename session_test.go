package limesurveyrc2api

import (
	"context"
	"errors"
	"testing"
)

func TestOpen_Success(t *testing.T) {
	var gotParams string
	c := newStubClient(t, func(call rpcCall) any {
		if call.Method != "get_session_key" {
			t.Errorf("unexpected method %q", call.Method)
		}
		gotParams = string(call.Params)
		return testSessionKey
	})

	if err := c.Open(context.Background(), "secret"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := `{"username":"admin","password":"secret"}`
	if gotParams != want {
		t.Errorf("params = %s, want %s", gotParams, want)
	}
	if c.SessionKey() != testSessionKey {
		t.Errorf("SessionKey() = %q, want %q", c.SessionKey(), testSessionKey)
	}
}

func TestOpen_EmptyPassword(t *testing.T) {
	c := newStubClient(t, func(call rpcCall) any {
		t.Errorf("unexpected call %q", call.Method)
		return nil
	})

	if err := c.Open(context.Background(), ""); !errors.Is(err, ErrNoPassword) {
		t.Errorf("Open() error = %v, want ErrNoPassword", err)
	}
}

func TestOpen_InvalidCredentials(t *testing.T) {
	c := newStubClient(t, func(call rpcCall) any {
		return map[string]string{"status": "Invalid user name or password"}
	})

	err := c.Open(context.Background(), "wrong")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Open() error = %v, want *StatusError", err)
	}
	if statusErr.Method != "get_session_key" {
		t.Errorf("Method = %q, want get_session_key", statusErr.Method)
	}
	if statusErr.Status != "Invalid user name or password" {
		t.Errorf("Status = %q, want Invalid user name or password", statusErr.Status)
	}
	if c.SessionKey() != "" {
		t.Errorf("SessionKey() = %q, want empty after failed open", c.SessionKey())
	}
}

func TestClose_ReleasesKey(t *testing.T) {
	var released string
	c := newStubClient(t, withSession(func(call rpcCall) any {
		if call.Method != "release_session_key" {
			t.Errorf("unexpected method %q", call.Method)
		}
		released = string(call.Params)
		return "OK"
	}))

	if err := c.Open(context.Background(), "secret"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := `{"sSessionKey":"` + testSessionKey + `"}`
	if released != want {
		t.Errorf("params = %s, want %s", released, want)
	}
	if c.SessionKey() != "" {
		t.Errorf("SessionKey() = %q, want empty after Close", c.SessionKey())
	}
}

func TestClose_NoSession(t *testing.T) {
	c := newStubClient(t, func(call rpcCall) any {
		t.Errorf("unexpected call %q", call.Method)
		return nil
	})

	if err := c.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v, want nil without a session", err)
	}
}

func TestEnsureSession_LazyOpen(t *testing.T) {
	opens := 0
	c := newStubClient(t, func(call rpcCall) any {
		switch call.Method {
		case "get_session_key":
			opens++
			return testSessionKey
		case "get_summary":
			return map[string]string{"token_count": "0"}
		default:
			t.Errorf("unexpected method %q", call.Method)
			return nil
		}
	})

	for range 3 {
		if _, err := c.Summary(context.Background(), 123); err != nil {
			t.Fatalf("Summary() error = %v", err)
		}
	}

	if opens != 1 {
		t.Errorf("expected 1 session open across calls, got %d", opens)
	}
}

func TestEnsureSession_NoPassword(t *testing.T) {
	c := newStubClient(t, func(call rpcCall) any {
		t.Errorf("unexpected call %q", call.Method)
		return nil
	})
	c.session.password = ""

	_, err := c.Summary(context.Background(), 123)
	if !errors.Is(err, ErrNoPassword) {
		t.Errorf("Summary() error = %v, want ErrNoPassword", err)
	}
}

func TestEnsureSession_ReopensAfterClose(t *testing.T) {
	opens := 0
	c := newStubClient(t, func(call rpcCall) any {
		switch call.Method {
		case "get_session_key":
			opens++
			return testSessionKey
		case "release_session_key":
			return "OK"
		case "get_summary":
			return map[string]string{"token_count": "0"}
		default:
			t.Errorf("unexpected method %q", call.Method)
			return nil
		}
	})

	if _, err := c.Summary(context.Background(), 123); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := c.Summary(context.Background(), 123); err != nil {
		t.Fatalf("Summary() after Close error = %v", err)
	}

	if opens != 2 {
		t.Errorf("expected 2 session opens, got %d", opens)
	}
}
