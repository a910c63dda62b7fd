package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchPoolsSendsQuery(t *testing.T) {
	var gotBody requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"pools":[
			{"outputToken":{"id":"0xaaa","name":"Curve USDC","symbol":"crvUSDC"},"createdTimestamp":"1700000001"},
			{"outputToken":{"id":"0xbbb","name":"Curve DAI","symbol":"crvDAI"},"createdTimestamp":"1700000002"}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{})
	pools, err := client.FetchPools(context.Background(), server.URL, 1700000000)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, "crvUSDC", pools[0].OutputToken.Symbol)
	require.EqualValues(t, 1700000002, pools[1].CreatedTimestamp)

	require.Equal(t, poolsQuery, gotBody.Query)
	require.EqualValues(t, 1700000000, gotBody.Variables["lastTimestamp"])
}

func TestFetchPoolsEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"pools":[]}}`))
	}))
	defer server.Close()

	pools, err := NewClient(ClientConfig{}).FetchPools(context.Background(), server.URL, 0)
	require.NoError(t, err)
	require.Empty(t, pools)
}

func TestFetchPoolsErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "http_status",
			status: http.StatusInternalServerError,
			body:   "upstream down",
			check: func(t *testing.T, err error) {
				var target *TransportError
				require.True(t, errors.As(err, &target))
				require.Equal(t, http.StatusInternalServerError, target.StatusCode)
				require.Contains(t, err.Error(), "500")
			},
		},
		{
			name:   "graphql_errors",
			status: http.StatusOK,
			body:   `{"errors":[{"message":"bad indexers"},{"message":"try later"}]}`,
			check: func(t *testing.T, err error) {
				var target *GraphQLError
				require.True(t, errors.As(err, &target))
				require.Equal(t, []string{"bad indexers", "try later"}, target.Messages)
			},
		},
		{
			name:   "missing_pools",
			status: http.StatusOK,
			body:   `{"data":{}}`,
			check: func(t *testing.T, err error) {
				var target *MalformedResponseError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name:   "missing_data",
			status: http.StatusOK,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var target *MalformedResponseError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name:   "not_json",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			check: func(t *testing.T, err error) {
				var target *MalformedResponseError
				require.True(t, errors.As(err, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(ClientConfig{}).FetchPools(context.Background(), server.URL, 0)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestFetchPoolsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(ClientConfig{}).FetchPools(context.Background(), url, 0)
	var target *UnknownError
	require.True(t, errors.As(err, &target))
	require.Equal(t, "unknown", Kind(err))
}

func TestFetchPoolsHonoursCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"pools":[]}}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ClientConfig{RequestsPerSecond: 1}).FetchPools(ctx, server.URL, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
