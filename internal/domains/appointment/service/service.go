package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"patitas/config"
	"patitas/infras/kafka"
	"patitas/infras/otel"
	"patitas/internal/domains/appointment/model"
	"patitas/internal/domains/appointment/model/dto"
	"patitas/internal/domains/appointment/repository"
	"patitas/internal/domains/appointment/schedule"
	petRepo "patitas/internal/domains/pet/repository"
	"patitas/shared"
	"patitas/shared/cache"
	"patitas/shared/constant"
	gDto "patitas/shared/dto"
	"patitas/shared/failure"
	"patitas/shared/timezone"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

const (
	eventReserved  = "appointment.reserved"
	eventBlocked   = "appointment.blocked"
	eventCancelled = "appointment.cancelled"
)

type Appointment interface {
	Availability(ctx context.Context, date string) (dto.AvailabilityResponse, error)
	Reserve(ctx context.Context, req dto.ReserveRequest) (dto.AppointmentResponse, error)
	BlockHour(ctx context.Context, req dto.BlockHourRequest) (dto.AppointmentResponse, error)
	BlockDay(ctx context.Context, req dto.BlockDayRequest) (dto.BlockDayResponse, error)
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo     repository.Appointment
	petRepo  petRepo.Pet
	cfg      *config.Config
	cache    cache.RedisCache
	broker   kafka.Client
	otel     otel.Otel
	holidays schedule.Holidays
	now      func() time.Time
}

func New(repo repository.Appointment, petRepo petRepo.Pet, cfg *config.Config, cache cache.RedisCache, broker kafka.Client, otel otel.Otel) Appointment {
	return NewWithClock(repo, petRepo, cfg, cache, broker, otel, timezone.Now)
}

// NewWithClock builds the service with an explicit clock. The same-day rules
// (lead-time cutoff, availability filtering) all read "now" from it, so tests
// pin the clock to a fixed instant.
func NewWithClock(repo repository.Appointment, petRepo petRepo.Pet, cfg *config.Config, cache cache.RedisCache, broker kafka.Client, otel otel.Otel, now func() time.Time) Appointment {
	holidays, err := schedule.ParseHolidays(cfg.Schedule.Holidays)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid holiday configuration")
	}

	return &serviceImpl{
		repo:     repo,
		petRepo:  petRepo,
		cfg:      cfg,
		cache:    cache,
		broker:   broker,
		otel:     otel,
		holidays: holidays,
		now:      now,
	}
}

type caller struct {
	ID   string
	Role string
}

func (c caller) isAdmin() bool {
	return c.Role == constant.RoleAdmin || c.Role == constant.RoleSuperAdmin
}

func callerFromContext(ctx context.Context) caller {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return caller{ID: id, Role: role}
}

// Availability returns the still-bookable hours of a date, ascending. It is
// recomputed from the store on every call: the slot set is at most ten rows
// and a stale answer here turns directly into a double-booking attempt, so
// this read is deliberately never cached.
func (s *serviceImpl) Availability(ctx context.Context, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := schedule.ParseWireDate(date)
	if err != nil {
		return res, err
	}

	res.Date = date
	res.Hours = []string{}

	if !schedule.IsOpenDate(day, s.holidays) {
		return res, nil
	}

	occupied, err := s.repo.OccupiedHours(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied hours")

		return res, fmt.Errorf("failed to get occupied hours: %w", err)
	}

	free := schedule.FreeHours(occupied)

	who := callerFromContext(ctx)
	now := s.now()

	if !who.isAdmin() && schedule.SameDay(day, now) {
		cutoff := schedule.LeadTimeCutoff(now, s.cfg.Schedule.LeadTimeHours)
		free = slices.DeleteFunc(free, func(hour string) bool {
			return hour < cutoff
		})
	}

	res.Hours = free

	return res, nil
}

// Reserve validates and persists one slot. The conflict pre-check gives a
// fast, friendly answer; the unique constraint at insert time is the one that
// actually decides a race, and its violation is reported as the same conflict.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	who := callerFromContext(ctx)

	if !schedule.ValidHour(req.Hour) {
		return res, ErrUnknownHour
	}

	day, err := schedule.ParseISODate(req.Date)
	if err != nil {
		return res, err
	}

	// Role-based field normalization: a client always books for themselves,
	// whatever the payload says. Only admins may block or assign owners.
	ownerID := who.ID
	blocked := false

	if who.isAdmin() {
		blocked = req.Blocked
		if req.OwnerID != nil {
			ownerID = *req.OwnerID
		}
	}

	if blocked {
		if req.Label == nil || *req.Label == constant.Empty {
			return res, failure.BadRequestFromString("a blocked slot needs a label") //nolint:wrapcheck
		}
	} else {
		if req.PetID == nil {
			return res, ErrPetRequired
		}

		if !who.isAdmin() {
			owned, err := s.petRepo.BelongsTo(ctx, *req.PetID, who.ID)
			if err != nil {
				log.Error().Err(err).Msg("failed to check pet ownership")

				return res, fmt.Errorf("failed to check pet ownership: %w", err)
			}

			if !owned {
				return res, ErrNotYourPet
			}
		}
	}

	if err = s.checkOpenDate(day, who); err != nil {
		return res, err
	}

	if err = s.checkLeadTime(day, req.Hour, who); err != nil {
		return res, err
	}

	occupied, err := s.repo.FindByDateHour(ctx, day, req.Hour)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot occupancy")

		return res, fmt.Errorf("failed to check slot occupancy: %w", err)
	}

	if occupied.ID != constant.Empty {
		log.Warn().Str("date", req.Date).Str("hour", req.Hour).Msg("slot already reserved")

		return res, ErrSlotTaken
	}

	appointment := req.ToModel(day, ownerID, blocked, who.ID)

	if err = s.insertSlot(ctx, appointment); err != nil {
		return res, err
	}

	event := eventReserved
	if blocked {
		event = eventBlocked
	}

	s.afterWrite(ctx, event, appointment)

	res.FromModel(appointment)

	return res, nil
}

// BlockHour closes a single hour for administrative reasons. No pet, no lead
// time, just a labeled closure owned by the admin who created it.
func (s *serviceImpl) BlockHour(ctx context.Context, req dto.BlockHourRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockHour")
	defer scope.End()
	defer scope.TraceIfError(err)

	who := callerFromContext(ctx)
	if !who.isAdmin() {
		return res, failure.ForbiddenError
	}

	if !schedule.ValidHour(req.Hour) {
		return res, ErrUnknownHour
	}

	day, err := schedule.ParseISODate(req.Date)
	if err != nil {
		return res, err
	}

	if err = s.checkOpenDate(day, who); err != nil {
		return res, err
	}

	occupied, err := s.repo.FindByDateHour(ctx, day, req.Hour)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot occupancy")

		return res, fmt.Errorf("failed to check slot occupancy: %w", err)
	}

	if occupied.ID != constant.Empty {
		return res, ErrSlotTaken
	}

	block := req.ToModel(day, who.ID)

	if err = s.insertSlot(ctx, block); err != nil {
		return res, err
	}

	s.afterWrite(ctx, eventBlocked, block)

	res.FromModel(block)

	return res, nil
}

// BlockDay closes every still-free hour of a date in one sweep. Each hour is
// inserted independently; the store offers no cheap multi-row transaction
// here, so a concurrent reservation can still win one of the hours. That hour
// is reported under Failed and the rest of the sweep carries on.
func (s *serviceImpl) BlockDay(ctx context.Context, req dto.BlockDayRequest) (res dto.BlockDayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	who := callerFromContext(ctx)
	if !who.isAdmin() {
		return res, failure.ForbiddenError
	}

	day, err := schedule.ParseISODate(req.Date)
	if err != nil {
		return res, err
	}

	if err = s.checkOpenDate(day, who); err != nil {
		return res, err
	}

	occupied, err := s.repo.OccupiedHours(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied hours")

		return res, fmt.Errorf("failed to get occupied hours: %w", err)
	}

	res.Date = req.Date
	res.Skipped = occupied
	res.Blocked = []string{}
	res.Failed = []string{}

	for _, hour := range schedule.FreeHours(occupied) {
		block := req.ToModel(day, hour, who.ID)

		insertErr := s.repo.Insert(ctx, block)

		switch {
		case insertErr == nil:
			res.Blocked = append(res.Blocked, hour)
		case errors.Is(insertErr, repository.ErrDuplicateSlot):
			log.Warn().Str("date", req.Date).Str("hour", hour).Msg("hour reserved during day block sweep")

			res.Failed = append(res.Failed, hour)
		default:
			log.Error().Err(insertErr).Str("hour", hour).Msg("failed to block hour")

			res.Failed = append(res.Failed, hour)
		}
	}

	if len(res.Blocked) > 0 {
		s.afterWrite(ctx, eventBlocked, model.Appointment{
			Date:    day,
			OwnerID: who.ID,
			Blocked: true,
		})
	}

	return res, nil
}

// Cancel releases a slot by marking it cancelled. The row stays for history;
// the partial unique index ignores cancelled rows, so the hour becomes
// immediately re-bookable, first come first served.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	who := callerFromContext(ctx)

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return ErrNotFound
	}

	if !who.isAdmin() && appointment.OwnerID != who.ID {
		owned := false

		if appointment.PetID != nil {
			owned, err = s.petRepo.BelongsTo(ctx, *appointment.PetID, who.ID)
			if err != nil {
				log.Error().Err(err).Msg("failed to check pet ownership")

				return fmt.Errorf("failed to check pet ownership: %w", err)
			}
		}

		if !owned {
			return failure.ForbiddenError
		}
	}

	if appointment.Status == model.StatusCancelled {
		return nil
	}

	err = s.repo.Update(ctx, s.statusChange(model.StatusCancelled, who.ID), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel appointment")

		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.afterWrite(ctx, eventCancelled, appointment)

	return nil
}

// Complete marks a delivered appointment as finished. Admin only; a blocked
// or cancelled slot cannot be completed.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	who := callerFromContext(ctx)
	if !who.isAdmin() {
		return failure.ForbiddenError
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return ErrNotFound
	}

	if appointment.Blocked || appointment.Status != model.StatusPending {
		return failure.BadRequestFromString("only a pending reservation can be completed") //nolint:wrapcheck
	}

	err = s.repo.Update(ctx, s.statusChange(model.StatusCompleted, who.ID), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to complete appointment")

		return fmt.Errorf("failed to complete appointment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, ErrNotFound
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

// checkOpenDate rejects closed weekdays and holidays. Admins may be exempted
// by configuration for corrective bookings (a block on a holiday, a make-up
// slot after a missed day).
func (s *serviceImpl) checkOpenDate(day time.Time, who caller) error {
	if schedule.IsOpenDate(day, s.holidays) {
		return nil
	}

	if who.isAdmin() && s.cfg.Schedule.AdminOpenDayExempt {
		return nil
	}

	return ErrClosedDay
}

// checkLeadTime enforces the same-day minimum notice for self-service
// bookings. Future dates are never affected.
func (s *serviceImpl) checkLeadTime(day time.Time, hour string, who caller) error {
	if who.isAdmin() && s.cfg.Schedule.AdminLeadExempt {
		return nil
	}

	now := s.now()
	if !schedule.SameDay(day, now) {
		return nil
	}

	if hour < schedule.LeadTimeCutoff(now, s.cfg.Schedule.LeadTimeHours) {
		return ErrLeadTime
	}

	return nil
}

func (s *serviceImpl) insertSlot(ctx context.Context, appointment model.Appointment) error {
	err := s.repo.Insert(ctx, appointment)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			log.Warn().
				Str("hour", appointment.Hour).
				Msg("slot reserved concurrently, constraint rejected insert")

			return ErrSlotTaken
		}

		log.Error().Err(err).Msg("failed to insert appointment")

		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	return nil
}

func (s *serviceImpl) statusChange(status, user string) map[string]any {
	return map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: s.now(),
		constant.FieldModifiedBy: user,
	}
}

type appointmentEvent struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Date    string `json:"date"`
	Hour    string `json:"hour,omitempty"`
	OwnerID string `json:"owner_id"`
	Blocked bool   `json:"blocked"`
}

// afterWrite publishes the calendar change and drops stale list caches.
// Both are fire-and-forget: a lost event or cache miss never fails a booking.
func (s *serviceImpl) afterWrite(ctx context.Context, event string, appointment model.Appointment) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: appointment.ID,
			Value: appointmentEvent{
				Type:    event,
				ID:      appointment.ID,
				Date:    schedule.FormatDate(appointment.Date),
				Hour:    appointment.Hour,
				OwnerID: appointment.OwnerID,
				Blocked: appointment.Blocked,
			},
		}

		if err := s.broker.SendMessages(c, s.cfg.Kafka.Topic.Appointments, msg); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish appointment event")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)

		if appointment.ID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, appointment.ID)); err != nil {
				log.Error().Err(err).Msg("failed to delete appointment from cache")
			}
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}
