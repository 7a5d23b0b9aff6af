package toggle_slot

import (
	"context"
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

type BlockService interface {
	ToggleSlot(ctx context.Context, date time.Time, start types.TimeString) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
