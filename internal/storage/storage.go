package storage

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"poolTags/internal/model"
)

// Storage defines a sink for contract tags.
type Storage interface {
	PutTags(ctx context.Context, chainID string, tags []model.ContractTag) error
}

// Multi writes to every sink in order and stops at the first error.
type Multi []Storage

func (m Multi) PutTags(ctx context.Context, chainID string, tags []model.ContractTag) error {
	for _, s := range m {
		if err := s.PutTags(ctx, chainID, tags); err != nil {
			return err
		}
	}
	return nil
}

// ChecksumAddress returns the EIP-55 form of the address part of a
// "eip155:<chain>:<address>" id, or "" when it is not a hex address.
func ChecksumAddress(contractAddress string) string {
	idx := strings.LastIndex(contractAddress, ":")
	addr := contractAddress[idx+1:]
	if !common.IsHexAddress(addr) {
		return ""
	}
	return common.HexToAddress(addr).Hex()
}
