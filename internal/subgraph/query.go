package subgraph

import (
	"fmt"

	"poolTags/internal/model"
)

// PageSize is the number of pools requested per page.
const PageSize = 1000

var poolsQuery = fmt.Sprintf(`query Pools($lastTimestamp: BigInt) {
  pools(
    first: %d
    orderBy: createdTimestamp
    orderDirection: asc
    where: { createdTimestamp_gt: $lastTimestamp }
  ) {
    outputToken {
      id
      name
      symbol
    }
    createdTimestamp
  }
}`, PageSize)

type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type poolsResponse struct {
	Data *struct {
		Pools *[]model.PoolRecord `json:"pools"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}
