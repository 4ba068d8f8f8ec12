package limesurveyrc2api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"runtime/debug"
	"time"
)

const modulePath = "github.com/kjona/limesurveyrc2api"

var (
	// ErrStatus is returned when the API returns an unexpected HTTP status code.
	ErrStatus = errors.New("unexpected status code")
	// ErrRPC is returned when the RPC response envelope carries an error field.
	ErrRPC = errors.New("rpc error")
	// ErrNoPassword is returned when no password is available to open a session.
	ErrNoPassword = errors.New("no password available")
)

// Client holds configuration needed to call the LimeSurvey RemoteControl 2 API.
// Use [New] to create a new client.
type Client struct {
	endpoint *url.URL

	username   string
	httpClient *http.Client
	userAgent  string

	session *sessionStore
}

// ClientOption configures a Client before use.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPassword configures the client to use the provided password so it can lazily open a session when needed.
// If not provided, [Client.Open] needs to be called explicitly.
func WithPassword(password string) ClientOption {
	return func(c *Client) {
		c.session.password = password
	}
}

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a RemoteControl 2 API client for the given endpoint,
// typically https://<host>/index.php/admin/remotecontrol, authenticating
// as the provided user. It applies any provided options.
func New(endpoint *url.URL, username string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		username: username,
		session:  &sessionStore{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}

	return c
}

// version returns the module version of the limesurveyrc2api package.
// It returns "devel" if built without module version information.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Version == "(devel)" {
				return "devel"
			}

			return dep.Version
		}
	}

	if info.Main.Path == modulePath {
		if info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		// If main version is (devel), we can try to read vcs revision
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return "devel+" + setting.Value[:7]
			}
		}
	}

	return "devel"
}

// userAgent returns the default User-Agent string for this package.
func userAgent() string {
	v := version()
	goVersion := runtime.Version()
	os := runtime.GOOS
	arch := runtime.GOARCH
	return fmt.Sprintf("go-limesurveyrc2/%s (%s; %s/%s)", v, goVersion, os, arch)
}
