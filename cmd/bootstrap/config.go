package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"tourbook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBusinessLocation,
	),
	fx.Invoke(logBusinessSettings),
)

// NewBusinessLocation resolves the zone every booking date and time is read in.
func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	loc, err := cfg.Business.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", cfg.Business.TimeZone, err)
	}
	return loc, nil
}

func logBusinessSettings(cfg config.Config, loc *time.Location, logger *slog.Logger) {
	logger.Info("business settings loaded",
		"timezone", loc.String(),
		"reference_prefix", cfg.Business.ReferencePrefix,
		"dynamic_slot_lock", cfg.Capacity.DynamicSlotLock,
		"guests_per_guide", cfg.Capacity.GuestsPerGuide,
		"bulk_max_items", cfg.Bulk.MaxItems)
}
