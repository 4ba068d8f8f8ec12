package limesurveyrc2api

import (
	"context"
	"sync"
)

// sessionStore holds the credentials and the active session key.
type sessionStore struct {
	sync.Mutex

	key      string
	password string
}

// Open authenticates against the API and stores the returned session
// key for subsequent calls. The password is retained so the session can
// be reopened lazily after [Client.Close].
func (c *Client) Open(ctx context.Context, password string) error {
	c.session.Lock()
	defer c.session.Unlock()

	if password == "" {
		return ErrNoPassword
	}

	params := rpcParams{
		{"username", c.username},
		{"password", password},
	}

	key, err := invoke[string](ctx, c, "get_session_key", params)
	if err != nil {
		return err
	}

	c.session.key = key
	c.session.password = password

	return nil
}

// Close releases the session key. Releasing an already released or
// invalid key is not an error; the API answers "OK" either way.
func (c *Client) Close(ctx context.Context) error {
	c.session.Lock()
	key := c.session.key
	c.session.Unlock()

	if key == "" {
		return nil
	}

	params := rpcParams{
		{"sSessionKey", key},
	}

	if _, err := invoke[string](ctx, c, "release_session_key", params); err != nil {
		return err
	}

	c.session.Lock()
	c.session.key = ""
	c.session.Unlock()

	return nil
}

// SessionKey returns the active session key, or the empty string when
// no session is open.
func (c *Client) SessionKey() string {
	c.session.Lock()
	defer c.session.Unlock()

	return c.session.key
}

// ensureSession returns the active session key, opening a session first
// if necessary.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	c.session.Lock()
	if c.session.key != "" {
		key := c.session.key
		c.session.Unlock()
		return key, nil
	}
	password := c.session.password
	c.session.Unlock()

	if password == "" {
		return "", ErrNoPassword
	}

	if err := c.Open(ctx, password); err != nil {
		return "", err
	}

	return c.SessionKey(), nil
}
