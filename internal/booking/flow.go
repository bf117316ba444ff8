package booking

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/appointment"
)

// SuccessRedirect is where the dialog sends the customer after a booking.
const SuccessRedirect = "/dashboard/customer/appointments"

type SlotSource interface {
	BookedTimes(ctx context.Context, salonID, date string) ([]string, error)
}

type Creator interface {
	Execute(ctx context.Context, in usecase.CreateAppointmentInput) (*models.Appointment, error)
}

type Rescheduler interface {
	Execute(ctx context.Context, in usecase.RescheduleAppointmentInput) (*models.Appointment, error)
}

type Deps struct {
	Slots      SlotSource
	Create     Creator
	Reschedule Rescheduler
	Policy     usecase.Policy
	Logger     *zap.Logger
}

// Flow is one open booking or reschedule dialog. All methods are safe for
// concurrent use.
type Flow struct {
	mu   sync.Mutex
	deps Deps
	log  *zap.Logger

	salon   models.Salon
	catalog []models.Service

	draft    models.BookingDraft
	selected []models.Service
	duration int
	locked   bool

	state State

	// Booked-time fetch for the current date. gen increases on every date
	// change; a result for an older gen is dropped.
	gen       uint64
	loading   bool
	ready     chan struct{}
	cancel    context.CancelFunc
	booked    []string
	slots     []domain.TimeSlot
	pendingAt string

	submitting bool
}

// NewFlow opens a booking for a salon with its service catalog.
func NewFlow(deps Deps, salon models.Salon, catalog []models.Service) *Flow {
	f := newFlow(deps, salon, catalog)
	f.draft.SalonID = salon.ID
	return f
}

// NewRescheduleFlow opens a dialog that moves ap to another date and time.
// The service set is fixed to the appointment's own.
func NewRescheduleFlow(deps Deps, salon models.Salon, catalog []models.Service, ap models.Appointment) *Flow {
	f := newFlow(deps, salon, catalog)
	f.locked = true

	ids := ap.ServiceIDs
	if len(ids) == 0 && ap.ServiceID != "" {
		ids = []string{ap.ServiceID}
	}

	f.draft = models.BookingDraft{
		SalonID:       salon.ID,
		ServiceIDs:    slices.Clone(ids),
		Notes:         ap.Notes,
		AppointmentID: ap.ID,
	}

	// A service missing from the catalog still belongs to the appointment;
	// it just contributes no duration.
	for _, id := range ids {
		if s, ok := f.service(id); ok {
			f.selected = append(f.selected, s)
		}
	}
	f.duration = domain.TotalDuration(f.selected)
	f.settle()
	return f
}

func newFlow(deps Deps, salon models.Salon, catalog []models.Service) *Flow {
	return &Flow{
		deps:    deps,
		log:     logger.OrNop(deps.Logger),
		salon:   salon,
		catalog: slices.Clone(catalog),
		draft:   models.BookingDraft{ServiceIDs: []string{}},
		state:   State{Phase: PhaseSelectingServices},
	}
}

// ======================================================
// SERVICES
// ======================================================

// ToggleService adds or removes a service. The chosen time is cleared since
// its slot was sized for the old duration.
func (f *Flow) ToggleService(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if f.locked {
		return ErrServicesLocked
	}
	if _, ok := f.service(id); !ok {
		return domain.ErrUnknownService
	}

	if i := slices.Index(f.draft.ServiceIDs, id); i >= 0 {
		f.draft.ServiceIDs = slices.Delete(f.draft.ServiceIDs, i, i+1)
	} else {
		f.draft.ServiceIDs = append(f.draft.ServiceIDs, id)
	}

	f.selected, _ = domain.SelectServices(f.catalog, f.draft.ServiceIDs)
	f.duration = domain.TotalDuration(f.selected)
	f.draft.Time = ""
	f.pendingAt = ""

	if f.draft.Date != "" && !f.loading {
		f.regenerate()
	}

	f.settle()
	return nil
}

// ======================================================
// DATE
// ======================================================

// SelectDate stores date and starts loading its booked times. A weekend or
// out-of-window date is refused and the draft keeps its previous date.
func (f *Flow) SelectDate(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if err := f.deps.Policy.CheckDate(&f.salon, date); err != nil {
		return err
	}

	f.draft.Date = date
	f.draft.Time = ""
	f.pendingAt = ""
	f.startFetch(ctx, date)

	f.settle()
	return nil
}

func (f *Flow) startFetch(ctx context.Context, date string) {
	f.stopFetch()

	f.gen++
	gen := f.gen

	// The fetch outlives the request that asked for it but keeps its values
	// (the bearer token).
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.cancel = cancel

	f.loading = true
	f.ready = make(chan struct{})
	f.booked = nil
	f.slots = nil

	go f.fetch(fetchCtx, gen, date, f.ready)
}

// stopFetch cancels an in-flight fetch and releases its waiters.
func (f *Flow) stopFetch() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.loading {
		close(f.ready)
		f.loading = false
	}
}

func (f *Flow) fetch(ctx context.Context, gen uint64, date string, ready chan struct{}) {
	booked, err := f.deps.Slots.BookedTimes(ctx, f.salon.ID, date)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen || !f.loading {
		f.log.Debug("discarding stale booked times", zap.String("date", date))
		metrics.RecordSlotFetch("stale")
		return
	}

	if err != nil {
		f.log.Warn("booked times unavailable, showing all slots",
			zap.String("salon_id", f.salon.ID),
			zap.String("date", date),
			zap.Error(err),
		)
		metrics.RecordSlotFetch("degraded")
		booked = nil
	} else {
		metrics.RecordSlotFetch("ok")
	}

	f.booked = booked
	f.regenerate()

	f.loading = false
	f.cancel()
	f.cancel = nil
	close(ready)

	if f.pendingAt != "" {
		if f.free(f.pendingAt) {
			f.draft.Time = f.pendingAt
		}
		f.pendingAt = ""
	}

	if f.state.Phase != PhaseSubmitting && f.state.Phase != PhaseDone {
		f.settle()
	}
}

func (f *Flow) regenerate() {
	opening, closing := domain.OpeningHours(&f.salon)
	f.slots = domain.GenerateSlots(f.duration, f.booked, opening, closing)
}

// WaitSlots blocks until the slot grid of the current date is ready.
func (f *Flow) WaitSlots(ctx context.Context) ([]domain.TimeSlot, error) {
	for {
		f.mu.Lock()
		if !f.loading {
			slots := slices.Clone(f.slots)
			f.mu.Unlock()
			return slots, nil
		}
		ready := f.ready
		f.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ======================================================
// TIME / NOTES
// ======================================================

func (f *Flow) SelectTime(t string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if f.draft.Date == "" || len(f.draft.ServiceIDs) == 0 {
		return domain.ErrIncomplete
	}
	if f.loading {
		return ErrSlotsLoading
	}
	if !domain.ValidTime(t) {
		return domain.ErrInvalidTime
	}

	i := slices.IndexFunc(f.slots, func(s domain.TimeSlot) bool { return s.Start == t })
	if i < 0 {
		return domain.ErrInvalidTime
	}
	if f.slots[i].IsBooked {
		return ErrSlotUnavailable
	}

	f.draft.Time = t
	f.settle()
	return nil
}

func (f *Flow) SetNotes(notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	f.draft.Notes = notes
	return nil
}

// ======================================================
// SUBMIT
// ======================================================

func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmit()
}

func (f *Flow) canSubmit() bool {
	return domain.IsComplete(f.draft) && !f.submitting && f.state.Phase != PhaseDone
}

// Submit sends the draft to the API. An incomplete draft is refused without
// any call. On failure the draft is kept so the customer can retry.
func (f *Flow) Submit(ctx context.Context) (*models.Appointment, error) {
	f.mu.Lock()
	if f.state.Phase == PhaseDone {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	if !domain.IsComplete(f.draft) {
		f.mu.Unlock()
		return nil, domain.ErrIncomplete
	}
	if err := f.moveTo(PhaseSubmitting, ""); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true

	draft := f.draft.Clone()
	salon := f.salon
	catalog := slices.Clone(f.catalog)
	duration := f.duration
	f.mu.Unlock()

	var (
		ap  *models.Appointment
		err error
	)
	if draft.AppointmentID != "" {
		ap, err = f.deps.Reschedule.Execute(ctx, usecase.RescheduleAppointmentInput{
			Salon:           salon,
			AppointmentID:   draft.AppointmentID,
			DurationMinutes: duration,
			Date:            draft.Date,
			Time:            draft.Time,
		})
	} else {
		ap, err = f.deps.Create.Execute(ctx, usecase.CreateAppointmentInput{
			Salon:   salon,
			Catalog: catalog,
			Draft:   draft,
		})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.log.Info("booking submit failed",
			zap.String("salon_id", salon.ID),
			zap.String("appointment_id", draft.AppointmentID),
			zap.Error(err),
		)
		_ = f.moveTo(PhaseFailed, httperr.UserMessage(err))
		return nil, err
	}

	_ = f.moveTo(PhaseDone, "")
	f.stopFetch()
	f.draft = models.BookingDraft{SalonID: salon.ID, ServiceIDs: []string{}}
	f.selected = nil
	f.duration = 0
	f.booked = nil
	f.slots = nil
	return ap, nil
}

// ======================================================
// SNAPSHOT / RESTORE
// ======================================================

func (f *Flow) Snapshot() models.BookingDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.draft.Clone()
	if d.Time == "" && f.pendingAt != "" {
		d.Time = f.pendingAt
	}
	return d
}

// Restore reapplies a saved draft. Parts that no longer hold (a service
// gone from the catalog, a date now in the past, a time since booked) are
// dropped.
func (f *Flow) Restore(ctx context.Context, d models.BookingDraft) {
	if !f.locked {
		for _, id := range d.ServiceIDs {
			if !f.hasService(id) {
				_ = f.ToggleService(id)
			}
		}
	}
	_ = f.SetNotes(d.Notes)

	if d.Date == "" || f.SelectDate(ctx, d.Date) != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if d.Time != "" && f.draft.Date == d.Date {
		if f.loading {
			f.pendingAt = d.Time
		} else if f.free(d.Time) {
			f.draft.Time = d.Time
			f.settle()
		}
	}
}

func (f *Flow) hasService(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.draft.ServiceIDs, id)
}

// ======================================================
// VIEW
// ======================================================

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) IsReschedule() bool {
	return f.locked
}

func (f *Flow) SalonID() string {
	return f.salon.ID
}

func (f *Flow) View() dto.BookingView {
	f.mu.Lock()
	defer f.mu.Unlock()

	window := f.deps.Policy.Window(&f.salon)

	v := dto.BookingView{
		Phase:        string(f.state.Phase),
		Reason:       f.state.Reason,
		Reschedule:   f.locked,
		Salon:        f.salon,
		Services:     slices.Clone(f.catalog),
		Draft:        f.draft.Clone(),
		TotalMinutes: f.duration,
		TotalPrice:   domain.TotalPrice(f.selected),
		MinDate:      window.MinDate(),
		MaxDate:      window.MaxDate(),
		LoadingSlots: f.loading,
		Slots:        slices.Clone(f.slots),
		CanSubmit:    f.canSubmit(),
		Submitting:   f.submitting,
	}
	if v.Slots == nil {
		v.Slots = []domain.TimeSlot{}
	}
	if f.state.Phase == PhaseDone {
		v.Redirect = SuccessRedirect
	}
	return v
}

// Close stops any in-flight fetch.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopFetch()
}

// ======================================================
// INTERNAL
// ======================================================

func (f *Flow) editable() error {
	switch {
	case f.state.Phase == PhaseDone:
		return ErrClosed
	case f.submitting:
		return ErrSubmitting
	}
	return nil
}

func (f *Flow) service(id string) (models.Service, bool) {
	for _, s := range f.catalog {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}

func (f *Flow) free(t string) bool {
	return slices.ContainsFunc(f.slots, func(s domain.TimeSlot) bool {
		return s.Start == t && !s.IsBooked
	})
}

// settle moves the flow to the selection phase the draft is in.
func (f *Flow) settle() {
	to := PhaseSelectingSlot
	switch {
	case len(f.draft.ServiceIDs) == 0:
		to = PhaseSelectingServices
	case f.draft.Date == "":
		to = PhaseSelectingDate
	}

	if err := f.moveTo(to, ""); err != nil {
		f.log.Error("booking phase", zap.Error(err))
	}
}

func (f *Flow) moveTo(to Phase, reason string) error {
	next, err := f.state.next(to, reason)
	if err != nil {
		return err
	}
	f.state = next
	return nil
}
