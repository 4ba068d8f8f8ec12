package limesurveyrc2api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// rpcRequest is the JSON-RPC request envelope expected by the API.
type rpcRequest struct {
	Method string    `json:"method"`
	Params rpcParams `json:"params"`
	ID     int       `json:"id"`
}

// rpcParam is a single named parameter of an RPC call.
type rpcParam struct {
	key   string
	value any
}

// rpcParams is an ordered parameter list. Despite being named, the API
// treats parameters as positional, so insertion order must be preserved
// when encoding to JSON.
type rpcParams []rpcParam

// MarshalJSON implements the [json.Marshaler] interface, writing the
// parameters as a JSON object in insertion order.
func (p rpcParams) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(param.key)
		if err != nil {
			return nil, fmt.Errorf("marshal parameter name %q: %w", param.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(param.value)
		if err != nil {
			return nil, fmt.Errorf("marshal parameter %q: %w", param.key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// nullableString encodes the empty string as JSON null, the API's
// marker for an omitted optional parameter.
func nullableString(s string) any {
	if s == "" {
		return nil
	}

	return s
}

// nullableInt encodes zero as JSON null, the API's marker for an
// omitted optional parameter.
func nullableInt(i int) any {
	if i == 0 {
		return nil
	}

	return i
}

// newRequest creates a new HTTP request carrying the RPC envelope.
func (c *Client) newRequest(ctx context.Context, body rpcRequest) (*http.Request, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint.String(),
		bytes.NewReader(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// do executes the request and checks the HTTP status.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		return resp, fmt.Errorf(
			"%s: %d, %w",
			http.StatusText(resp.StatusCode),
			resp.StatusCode,
			ErrStatus,
		)
	}

	return resp, nil
}

// query performs a single RPC round trip and returns the decoded result.
// This is the sole blocking point of every operation.
func (c *Client) query(ctx context.Context, method string, params rpcParams) (rpcResult, error) {
	req, err := c.newRequest(ctx, rpcRequest{Method: method, Params: params, ID: 1})
	if err != nil {
		return rpcResult{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return rpcResult{}, err
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return rpcResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(envelope.Error) > 0 && !bytes.Equal(envelope.Error, []byte("null")) {
		return rpcResult{}, fmt.Errorf("query %q: %s: %w", method, envelope.Error, ErrRPC)
	}

	return rpcResult{raw: envelope.Result}, nil
}
