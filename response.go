package limesurveyrc2api

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// rpcResponse represents the JSON-RPC response envelope returned by the API.
type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// rpcResult is the outcome of a single RPC round trip: either a payload
// or a status envelope. The two cases are mutually exclusive.
type rpcResult struct {
	raw json.RawMessage
}

// Status reports whether the result is a status envelope, a JSON object
// whose "status" member is a string naming a failure reason.
func (r rpcResult) Status() (string, bool) {
	var envelope struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(r.raw, &envelope); err != nil || envelope.Status == nil {
		return "", false
	}

	return *envelope.Status, true
}

// StatusError is returned when the API answers a call with a status
// envelope instead of a result payload.
type StatusError struct {
	// Method is the RPC method that was called.
	Method string
	// Status is the failure reason reported by the API, verbatim.
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Status)
}

// UnexpectedResponseError is returned when a response is neither a
// recognized status envelope nor the shape the method expects.
type UnexpectedResponseError struct {
	// Method is the RPC method that was called.
	Method string
	// Body is the raw result payload for diagnosis.
	Body json.RawMessage
}

// Error implements the error interface.
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %s", e.Method, e.Body)
}

// invoke performs an RPC call and decodes the result into T.
//
// When known statuses are given, only a matching status envelope fails
// with a [StatusError]; anything else is decoded as a payload. With no
// known statuses, every status envelope fails. Status comparison is
// case-sensitive and exact. A payload that cannot be decoded into T
// fails with an [UnexpectedResponseError].
func invoke[T any](ctx context.Context, c *Client, method string, params rpcParams, known ...string) (T, error) {
	var zero T

	result, err := c.query(ctx, method, params)
	if err != nil {
		return zero, err
	}

	if status, ok := result.Status(); ok {
		if len(known) == 0 || slices.Contains(known, status) {
			return zero, &StatusError{Method: method, Status: status}
		}
	}

	var v T
	if err := json.Unmarshal(result.raw, &v); err != nil {
		return zero, &UnexpectedResponseError{Method: method, Body: result.raw}
	}

	return v, nil
}
