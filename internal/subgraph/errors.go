package subgraph

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedChainError reports a chain id missing from the endpoint table.
type UnsupportedChainError struct {
	ChainID   string
	Supported []string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain id %q (supported: %s)", e.ChainID, strings.Join(e.Supported, ", "))
}

// TransportError reports a non-success HTTP status from the gateway.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("subgraph http status %d", e.StatusCode)
	}
	return fmt.Sprintf("subgraph http status %d: %s", e.StatusCode, e.Body)
}

// GraphQLError reports a response carrying a top-level errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("subgraph returned %d graphql error(s): %s", len(e.Messages), strings.Join(e.Messages, "; "))
}

// MalformedResponseError reports a response without the expected data.pools shape.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed subgraph response: " + e.Reason
}

// UnknownError wraps any failure outside the recognised taxonomy.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown subgraph error: %v", e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// Kind returns a short label for err, used for metrics.
func Kind(err error) string {
	var (
		unsupported *UnsupportedChainError
		transport   *TransportError
		graphQL     *GraphQLError
		malformed   *MalformedResponseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unsupported):
		return "unsupported_chain"
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &graphQL):
		return "graphql"
	case errors.As(err, &malformed):
		return "malformed_response"
	default:
		return "unknown"
	}
}
