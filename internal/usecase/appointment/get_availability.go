package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
)

type GetAvailability struct {
	gw     domain.Gateway
	policy Policy
	log    *zap.Logger
}

func NewGetAvailability(
	gw domain.Gateway,
	policy Policy,
	log *zap.Logger,
) *GetAvailability {
	return &GetAvailability{
		gw:     gw,
		policy: policy,
		log:    logger.OrNop(log),
	}
}

// BookedTimes returns the start times already taken at the salon on date.
// Cancelled and rejected appointments free their slot; an unknown status
// keeps it taken.
func (uc *GetAvailability) BookedTimes(ctx context.Context, salonID, date string) ([]string, error) {
	aps, err := uc.gw.ListAppointments(ctx, salonID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]string, 0, len(aps))
	for _, ap := range aps {
		if st, err := domain.ParseStatus(ap.Status); err == nil && !st.OccupiesSlot() {
			continue
		}
		out = append(out, ap.Time)
	}
	return out, nil
}

// Execute builds the slot grid for a salon, a date and a set of services.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	// --------------------------------------------------
	// 1️⃣ Salon
	// --------------------------------------------------
	salon, err := uc.gw.GetSalon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Date in the salon's timezone
	// --------------------------------------------------
	if err := uc.policy.CheckDate(salon, in.Date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Services
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return []domain.TimeSlot{}, nil
	}

	catalog, err := uc.gw.ListServices(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	selected, err := domain.SelectServices(catalog, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Booked times (best effort)
	// --------------------------------------------------
	booked, err := uc.BookedTimes(ctx, in.SalonID, in.Date)
	if err != nil {
		uc.log.Warn("booked times unavailable, showing all slots",
			zap.String("salon_id", in.SalonID),
			zap.String("date", in.Date),
			zap.Error(err),
		)
		metrics.RecordSlotFetch("degraded")
		booked = nil
	} else {
		metrics.RecordSlotFetch("ok")
	}

	// --------------------------------------------------
	// 5️⃣ Grid
	// --------------------------------------------------
	opening, closing := domain.OpeningHours(salon)
	return domain.GenerateSlots(domain.TotalDuration(selected), booked, opening, closing), nil
}
