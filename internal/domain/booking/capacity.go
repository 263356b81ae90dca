package booking

import (
	"tourbook/internal/domain/availability"

	"github.com/google/uuid"
)

// CapacityModel says where a booking's seats are counted. It is either
// Materialized (a schedule row keeps a counter) or Dynamic (computed from
// availability windows and the booking rows themselves).
type CapacityModel interface {
	isCapacityModel()
}

type Materialized struct {
	ScheduleID uuid.UUID
}

type Dynamic struct {
	Slot availability.Slot
}

func (Materialized) isCapacityModel() {}
func (Dynamic) isCapacityModel()      {}

// MatchCapacity dispatches on the model. Both arms are mandatory.
func MatchCapacity[T any](m CapacityModel, onMaterialized func(Materialized) T, onDynamic func(Dynamic) T) T {
	switch v := m.(type) {
	case Materialized:
		return onMaterialized(v)
	case Dynamic:
		return onDynamic(v)
	default:
		panic("booking: unknown capacity model")
	}
}
