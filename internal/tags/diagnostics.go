package tags

import (
	"go.uber.org/zap"

	"poolTags/internal/model"
)

// Diagnostics receives non-fatal events from a fetch.
type Diagnostics interface {
	RejectedPool(chainID string, pool model.PoolRecord)
	UpstreamError(chainID, message string)
	PageFetched(chainID string, page int, cursor int64, pools int)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) RejectedPool(string, model.PoolRecord) {}
func (NopDiagnostics) UpstreamError(string, string)          {}
func (NopDiagnostics) PageFetched(string, int, int64, int)   {}

// ZapDiagnostics writes events to a zap logger.
type ZapDiagnostics struct {
	logger *zap.Logger
}

func NewZapDiagnostics(logger *zap.Logger) *ZapDiagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapDiagnostics{logger: logger}
}

func (d *ZapDiagnostics) RejectedPool(chainID string, pool model.PoolRecord) {
	fields := []zap.Field{
		zap.String("chain_id", chainID),
		zap.Int64("created_timestamp", int64(pool.CreatedTimestamp)),
	}
	if pool.OutputToken != nil {
		fields = append(fields,
			zap.String("token", pool.OutputToken.ID),
			zap.String("name", pool.OutputToken.Name),
			zap.String("symbol", pool.OutputToken.Symbol),
		)
	}
	d.logger.Warn("skip pool with invalid symbol", fields...)
}

func (d *ZapDiagnostics) UpstreamError(chainID, message string) {
	d.logger.Error("subgraph error", zap.String("chain_id", chainID), zap.String("message", message))
}

func (d *ZapDiagnostics) PageFetched(chainID string, page int, cursor int64, pools int) {
	d.logger.Info("page fetched",
		zap.String("chain_id", chainID),
		zap.Int("page", page),
		zap.Int64("cursor", cursor),
		zap.Int("pools", pools),
	)
}
