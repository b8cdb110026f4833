package system

import (
	"github.com/l1jgo/dogfight/internal/core/event"
	"github.com/l1jgo/dogfight/internal/core/timer"
	"github.com/l1jgo/dogfight/internal/world"
	"go.uber.org/zap"
)

// Deps bundles the shared services every system receives.
type Deps struct {
	World  *world.State
	Bus    *event.Bus
	Clock  *timer.Clock
	Timers *timer.Queue
	Log    *zap.Logger
}
