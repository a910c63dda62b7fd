package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PoolRecord is a liquidity pool as returned by the subgraph.
type PoolRecord struct {
	OutputToken      *Token    `json:"outputToken"`
	CreatedTimestamp Timestamp `json:"createdTimestamp"`
}

// Timestamp is a unix timestamp in seconds. Subgraphs encode BigInt fields
// as JSON strings, so both strings and numbers are accepted.
type Timestamp int64

// UnmarshalJSON decodes a timestamp from a JSON number or numeric string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("timestamp is null")
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	*t = Timestamp(val)
	return nil
}
