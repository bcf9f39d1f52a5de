package appointment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"patitas/infras/otel"
	"patitas/internal/domains/appointment/model"
	"patitas/internal/domains/appointment/model/dto"
	"patitas/internal/domains/appointment/schedule"
	"patitas/internal/domains/appointment/service"
	"patitas/shared/constant"
	gDto "patitas/shared/dto"
	"patitas/shared/failure"
	"patitas/shared/validator"
	"patitas/transport/http/response"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Post("/", handler.Reserve)
		routerGroup.Post("/block", handler.BlockHour)
		routerGroup.Post("/block-day", handler.BlockDay)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/myappointments", handler.GetMyAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}/complete", handler.CompleteAppointment)
		routerGroup.Delete("/{id}", handler.CancelAppointment)
	})
}

// GetAvailability lists the free hours of a date.
// @Summary Get available hours
// @Description List the still-bookable hours of a date. Returns an empty list when the salon is closed.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param date query string true "Date (DD-MM-YYYY)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available hours"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("date query parameter is required"))

		return
	}

	availability, err := handler.service.Availability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// Reserve creates an appointment for one slot.
// @Summary Reserve a slot
// @Description Reserve one (date, hour) slot for a pet. Admins may reserve on behalf of an owner or create a blocked slot.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.ReserveRequest true "Reserve Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reserve")
	defer scope.End()

	req := dto.ReserveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appointment, err := handler.service.Reserve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reserve appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment reserved successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, appointment)
}

// BlockHour closes a single hour of the calendar.
// @Summary Block an hour
// @Description Close one (date, hour) slot for administrative reasons. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.BlockHourRequest true "Block Hour Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Hour blocked successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/block [post]
// @Security BearerAuth
func (handler *Handler) BlockHour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockHour")
	defer scope.End()

	req := dto.BlockHourRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	block, err := handler.service.BlockHour(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to block hour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hour blocked successfully")

	response.WithJSON(w, http.StatusCreated, block)
}

// BlockDay closes every free hour of a date.
// @Summary Block a full day
// @Description Close every still-free hour of a date in one sweep. Admin only. Reports blocked, skipped and failed hours.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.BlockDayRequest true "Block Day Request"
// @Success 200 {object} response.Data[dto.BlockDayResponse] "Day sweep result"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/block-day [post]
// @Security BearerAuth
func (handler *Handler) BlockDay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockDay")
	defer scope.End()

	req := dto.BlockDayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.BlockDay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to block day")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Day blocked successfully")

	response.WithJSON(w, http.StatusOK, result)
}

// GetAppointments retrieves all appointments based on query parameters.
// @Summary Get all appointments
// @Description Retrieve all appointments with optional filtering and pagination. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, cancelled, completed)"
// @Param date query string false "Filter by date (DD-MM-YYYY)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup, err := appointmentFilter(r, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid appointment filter")

		response.WithError(w, err)

		return
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetMyAppointments retrieves the appointments of the authenticated user.
// @Summary Get my appointments
// @Description Retrieve all appointments of the currently authenticated user with optional filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, cancelled, completed)"
// @Param date query string false "Filter by date (DD-MM-YYYY)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of user's appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/myappointments [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	owned := gDto.Filter{
		Field:    model.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}
	filterGroup, err := appointmentFilter(r, &owned)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid appointment filter")

		response.WithError(w, err)

		return
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User appointments retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// CompleteAppointment marks a delivered appointment as finished.
// @Summary Complete an appointment
// @Description Mark a pending appointment as completed after the grooming was delivered. Admin only.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment completed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment completed successfully")

	response.WithMessage(w, http.StatusOK, "Appointment completed successfully")
}

// CancelAppointment cancels an appointment and frees its slot.
// @Summary Cancel an appointment
// @Description Cancel an appointment by its unique identifier. The slot becomes bookable again.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment cancelled successfully")
}

// appointmentFilter builds the listing filter from the query string, with an
// optional mandatory filter prepended (ownership for the self-service list).
// The date filter arrives in the DD-MM-YYYY wire form and is normalized before
// it reaches the store; a malformed date is a bad request, not a query error.
func appointmentFilter(r *http.Request, mandatory *gDto.Filter) (gDto.FilterGroup, error) {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if mandatory != nil {
		filterGroup.Filters = append(filterGroup.Filters, *mandatory)
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if date := r.URL.Query().Get(model.FieldDate); date != constant.Empty {
		day, err := schedule.ParseWireDate(date)
		if err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    schedule.FormatDate(day),
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}
