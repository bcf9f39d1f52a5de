package pet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"patitas/infras/otel"
	"patitas/internal/domains/pet/model"
	"patitas/internal/domains/pet/model/dto"
	"patitas/internal/domains/pet/service"
	"patitas/shared/constant"
	gDto "patitas/shared/dto"
	"patitas/shared/failure"
	"patitas/shared/validator"
	"patitas/transport/http/response"
)

type Handler struct {
	service service.Pet
	otel    otel.Otel
}

func New(service service.Pet, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pets", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePet)
		routerGroup.Get("/", handler.GetPets)
		routerGroup.Get("/mypets", handler.GetMyPets)
		routerGroup.Get("/{id}", handler.GetPetByID)
		routerGroup.Patch("/{id}", handler.UpdatePet)
		routerGroup.Delete("/{id}", handler.DeletePet)
	})
}

// CreatePet registers a new pet.
// @Summary Register a new pet
// @Description Register a pet under the caller's account. Admins may register on behalf of an owner.
// @Tags Pet
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Pet name"
// @Param species formData string true "Species"
// @Param breed formData string false "Breed"
// @Param owner_id formData string false "Owner ID (admin only)"
// @Param notes formData string false "Notes"
// @Param photo formData file false "Pet photo"
// @Success 201 {object} response.Message "Pet created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets [post]
// @Security BearerAuth
func (handler *Handler) CreatePet(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePet")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreatePetRequest{
		Name:    request.FormValue("name"),
		Species: request.FormValue("species"),
	}

	if breed := request.FormValue("breed"); breed != constant.Empty {
		req.Breed = &breed
	}

	if ownerID := request.FormValue("owner_id"); ownerID != constant.Empty {
		req.OwnerID = &ownerID
	}

	if notes := request.FormValue("notes"); notes != constant.Empty {
		req.Notes = &notes
	}

	file, fileHeader, err := request.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pet")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pet created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Pet created successfully")
}

// GetPets retrieves all pets based on query parameters.
// @Summary Get all pets
// @Description Retrieve all pets with optional filtering and pagination. Admin only.
// @Tags Pet
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param species query string false "Filter by species"
// @Param owner_id query string false "Filter by owner"
// @Success 200 {object} response.Data[dto.GetPetsResponse] "List of pets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets [get]
// @Security BearerAuth
func (handler *Handler) GetPets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPets")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := petFilter(r, nil)

	pets, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pets retrieved successfully")

	response.WithJSON(w, http.StatusOK, pets)
}

// GetMyPets retrieves the pets of the authenticated user.
// @Summary Get my pets
// @Description Retrieve all pets of the currently authenticated user.
// @Tags Pet
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param species query string false "Filter by species"
// @Success 200 {object} response.Data[dto.GetPetsResponse] "List of user's pets"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets/mypets [get]
// @Security BearerAuth
func (handler *Handler) GetMyPets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyPets")
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
	filterGroup := petFilter(r, &owned)

	pets, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user pets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User pets retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, pets)
}

// GetPetByID retrieves a pet by its ID.
// @Summary Get a pet by ID
// @Description Retrieve a pet by its unique identifier.
// @Tags Pet
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Data[dto.PetResponse] "Pet details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPetByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPetByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pet, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pet by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pet retrieved successfully")

	response.WithJSON(w, http.StatusOK, pet)
}

// UpdatePet updates an existing pet by its ID.
// @Summary Update a pet by ID
// @Description Update the details of an existing pet. Owner or admin only.
// @Tags Pet
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Pet ID"
// @Param name formData string false "Pet name"
// @Param species formData string false "Species"
// @Param breed formData string false "Breed"
// @Param notes formData string false "Notes"
// @Param photo formData file false "Pet photo"
// @Success 200 {object} response.Message "Pet updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePet")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdatePetRequest{
		Name:    r.FormValue("name"),
		Species: r.FormValue("species"),
	}

	if breed := r.FormValue("breed"); breed != constant.Empty {
		req.Breed = &breed
	}

	if notes := r.FormValue("notes"); notes != constant.Empty {
		req.Notes = &notes
	}

	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pet")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pet updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Pet updated successfully")
}

// DeletePet deletes a pet by its ID.
// @Summary Delete a pet by ID
// @Description Delete a pet using its unique identifier. Owner or admin only.
// @Tags Pet
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Message "Pet deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pets/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePet")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pet")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pet deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Pet deleted successfully")
}

// petFilter builds the listing filter from the query string, with an optional
// mandatory ownership filter prepended.
func petFilter(r *http.Request, mandatory *gDto.Filter) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if mandatory != nil {
		filterGroup.Filters = append(filterGroup.Filters, *mandatory)
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if species := r.URL.Query().Get(model.FieldSpecies); species != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpecies,
			Operator: gDto.FilterOperatorEq,
			Value:    species,
			Table:    model.TableName,
		})
	}

	if mandatory == nil {
		if ownerID := r.URL.Query().Get(model.FieldOwnerID); ownerID != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldOwnerID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			})
		}
	}

	return filterGroup
}
