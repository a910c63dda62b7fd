package tags

import (
	"fmt"

	"poolTags/internal/model"
	"poolTags/internal/subgraph"
)

const (
	ProjectName   = "Curve"
	WebsiteLink   = "https://curve.fi/"
	maxSymbolTag  = 45
	nameTagSuffix = " Token"
	noteFormat    = "The liquidity pool token for the Curve pool %s (%s)."
)

// Transform converts a page of pools into contract tags, keeping input order.
// Pools with an invalid symbol are reported to diag and skipped. A pool
// without an output token fails the whole page.
func Transform(chainID string, pools []model.PoolRecord, diag Diagnostics) ([]model.ContractTag, error) {
	if diag == nil {
		diag = NopDiagnostics{}
	}

	out := make([]model.ContractTag, 0, len(pools))
	for i, pool := range pools {
		if pool.OutputToken == nil {
			return nil, &subgraph.MalformedResponseError{Reason: fmt.Sprintf("pool %d has no output token", i)}
		}
		token := pool.OutputToken

		if IsInvalid(token.Symbol) {
			diag.RejectedPool(chainID, pool)
			continue
		}

		out = append(out, model.ContractTag{
			ContractAddress: ContractAddress(chainID, token.ID),
			PublicNameTag:   Truncate(token.Symbol, maxSymbolTag) + nameTagSuffix,
			ProjectName:     ProjectName,
			UIWebsiteLink:   WebsiteLink,
			PublicNote:      fmt.Sprintf(noteFormat, token.Symbol, token.Name),
		})
	}
	return out, nil
}

// ContractAddress formats a CAIP-10 account id for an EVM address.
func ContractAddress(chainID, address string) string {
	return fmt.Sprintf("eip155:%s:%s", chainID, address)
}
