package subgraph

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const apiKeyPlaceholder = "[api-key]"

// endpoints maps a chain id to its subgraph gateway URL template.
// It is read-only after package initialisation.
var endpoints = map[string]string{
	"1": "https://gateway.thegraph.com/api/[api-key]/subgraphs/id/3fy93eAT56UJsRCEht8iFhfi6wjHWXtZ9dnnbQmvFopF",
}

// SupportedChainIDs returns the supported chain ids in ascending numeric order.
func SupportedChainIDs() []string {
	ids := make([]string, 0, len(endpoints))
	for id := range endpoints {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseUint(ids[i], 10, 64)
		b, _ := strconv.ParseUint(ids[j], 10, 64)
		return a < b
	})
	return ids
}

// EndpointTemplate returns the URL template for a chain id.
func EndpointTemplate(chainID string) (string, bool) {
	tmpl, ok := endpoints[chainID]
	return tmpl, ok
}

// ResolveEndpoint returns the subgraph URL for chainID with apiKey substituted.
func ResolveEndpoint(chainID, apiKey string) (string, error) {
	if !isNumeric(chainID) {
		return "", &UnsupportedChainError{ChainID: chainID, Supported: SupportedChainIDs()}
	}
	tmpl, ok := endpoints[chainID]
	if !ok {
		return "", &UnsupportedChainError{ChainID: chainID, Supported: SupportedChainIDs()}
	}
	return strings.ReplaceAll(tmpl, apiKeyPlaceholder, url.PathEscape(apiKey)), nil
}

// RedactURL hides the credential of a resolved URL for logging.
func RedactURL(resolved, apiKey string) string {
	if apiKey == "" {
		return resolved
	}
	resolved = strings.ReplaceAll(resolved, url.PathEscape(apiKey), "***")
	return strings.ReplaceAll(resolved, apiKey, "***")
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
