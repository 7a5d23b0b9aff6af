package block_day

import (
	"context"
	"time"
)

type BlockService interface {
	BlockDay(ctx context.Context, date time.Time) error
	UnblockDay(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
