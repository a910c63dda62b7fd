package model

// FetchSummary describes one completed tag export.
type FetchSummary struct {
	ChainID       string `json:"chain_id"`
	Pages         int    `json:"pages"`
	Pools         int    `json:"pools"`
	RejectedPools int    `json:"rejected_pools"`
	Tags          int    `json:"tags"`
	LastCursor    int64  `json:"last_cursor"`
	FinishedAt    string `json:"finished_at"`
}
