package subgraph

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResolveEndpointSubstitutesKey(t *testing.T) {
	for _, chainID := range SupportedChainIDs() {
		got, err := ResolveEndpoint(chainID, "secret-key")
		if err != nil {
			t.Fatalf("resolve %s: %v", chainID, err)
		}
		if strings.Contains(got, apiKeyPlaceholder) {
			t.Fatalf("placeholder left in %s", got)
		}
		if !strings.Contains(got, "/api/secret-key/") {
			t.Fatalf("key not substituted: %s", got)
		}
	}
}

func TestResolveEndpointEscapesKey(t *testing.T) {
	got, err := ResolveEndpoint("1", "a/b c")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(got, "/api/a%2Fb%20c/") {
		t.Fatalf("key not escaped: %s", got)
	}
}

func TestResolveEndpointUnsupported(t *testing.T) {
	for _, chainID := range []string{"999", "abc", "", "-1", "1.0"} {
		_, err := ResolveEndpoint(chainID, "key")
		var unsupported *UnsupportedChainError
		if !errors.As(err, &unsupported) {
			t.Fatalf("chain %q: expected UnsupportedChainError, got %v", chainID, err)
		}
		if !reflect.DeepEqual(unsupported.Supported, SupportedChainIDs()) {
			t.Fatalf("supported list mismatch: %v", unsupported.Supported)
		}
		if !strings.Contains(err.Error(), "1") {
			t.Fatalf("error should list supported ids: %v", err)
		}
	}
}

func TestRedactURL(t *testing.T) {
	resolved, err := ResolveEndpoint("1", "top/secret")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	redacted := RedactURL(resolved, "top/secret")
	if strings.Contains(redacted, "secret") {
		t.Fatalf("key leaked: %s", redacted)
	}
	if !strings.Contains(redacted, "/api/***/") {
		t.Fatalf("unexpected redaction: %s", redacted)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&UnsupportedChainError{ChainID: "9"}, "unsupported_chain"},
		{&TransportError{StatusCode: 500}, "transport"},
		{&GraphQLError{Messages: []string{"boom"}}, "graphql"},
		{&MalformedResponseError{Reason: "x"}, "malformed_response"},
		{&UnknownError{Err: errors.New("x")}, "unknown"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
