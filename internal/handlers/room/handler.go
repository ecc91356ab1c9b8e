package room

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/room/model"
	"kingdom/internal/domains/room/model/dto"
	"kingdom/internal/domains/room/service"
	"kingdom/shared"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramNumber  = "number"
	paramType    = "type"
	paramPackage = "package"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/available/type/{type}", handler.GetAvailableRoomsByType)
		routerGroup.Get("/stats", handler.GetRoomStats)
		routerGroup.Get("/capacity", handler.GetRoomsByCapacity)
		routerGroup.Get("/price-range", handler.GetRoomsByPriceRange)
		routerGroup.Get("/number/{number}", handler.GetRoomByNumber)
		routerGroup.Get("/type/{type}", handler.GetRoomsByType)
		routerGroup.Get("/package/{package}", handler.GetRoomsByPackage)
		routerGroup.Get("/status/{status}", handler.GetRoomsByStatus)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Patch("/{id}/status", handler.UpdateRoomStatus)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. Status defaults to AVAILABLE and the room number must be unique.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create room request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, room)
}

// GetRooms retrieves rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering and pagination.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_type query string false "Filter by room type"
// @Param package_tier query string false "Filter by package tier"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	handler.list(w, r, "GetRooms", true, dto.Filter{
		RoomType:    query.Get(model.FieldRoomType),
		PackageTier: query.Get(model.FieldPackageTier),
		Status:      query.Get(model.FieldStatus),
	})
}

// GetAvailableRooms lists rooms whose status is AVAILABLE.
// @Summary Get available rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /rooms/available [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetAvailableRooms", false, dto.Filter{Status: model.StatusAvailable})
}

// GetAvailableRoomsByType lists available rooms of one type.
// @Summary Get available rooms by type
// @Tags Room
// @Produce json
// @Param type path string true "Room type" Enums(STANDARD, DELUXE, VIP, FAMILY_SUITE)
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms/available/type/{type} [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableRoomsByType(w http.ResponseWriter, r *http.Request) {
	roomType := chi.URLParam(r, paramType)

	if err := validator.ValidateVar(roomType, model.TagRoomType); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetAvailableRoomsByType", false, dto.Filter{Status: model.StatusAvailable, RoomType: roomType})
}

// GetRoomsByType lists rooms of one type.
// @Summary Get rooms by type
// @Tags Room
// @Produce json
// @Param type path string true "Room type" Enums(STANDARD, DELUXE, VIP, FAMILY_SUITE)
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /rooms/type/{type} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomsByType(w http.ResponseWriter, r *http.Request) {
	roomType := chi.URLParam(r, paramType)

	if err := validator.ValidateVar(roomType, model.TagRoomType); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetRoomsByType", false, dto.Filter{RoomType: roomType})
}

// GetRoomsByPackage lists rooms of one package tier.
// @Summary Get rooms by package tier
// @Tags Room
// @Produce json
// @Param package path string true "Package tier" Enums(BASIC, PREMIUM, LUXURY, FAMILY)
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /rooms/package/{package} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomsByPackage(w http.ResponseWriter, r *http.Request) {
	tier := chi.URLParam(r, paramPackage)

	if err := validator.ValidateVar(tier, model.TagPackageTier); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetRoomsByPackage", false, dto.Filter{PackageTier: tier})
}

// GetRoomsByStatus lists rooms in one status.
// @Summary Get rooms by status
// @Tags Room
// @Produce json
// @Param status path string true "Room status" Enums(AVAILABLE, OCCUPIED, MAINTENANCE, OUT_OF_ORDER)
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /rooms/status/{status} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomsByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, constant.RequestParamStatus)

	if err := validator.ValidateVar(status, model.TagStatus); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetRoomsByStatus", false, dto.Filter{Status: status})
}

// GetRoomsByCapacity lists rooms holding at least min guests.
// @Summary Get rooms by minimum capacity
// @Tags Room
// @Produce json
// @Param min query integer true "Minimum capacity"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /rooms/capacity [get]
// @Security BearerAuth
func (handler *Handler) GetRoomsByCapacity(w http.ResponseWriter, r *http.Request) {
	minCapacity, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamMin))
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetRoomsByCapacity", false, dto.Filter{MinCapacity: &minCapacity})
}

// GetRoomsByPriceRange lists rooms priced within [min_price, max_price].
// @Summary Get rooms by price range
// @Tags Room
// @Produce json
// @Param min_price query number true "Minimum nightly price"
// @Param max_price query number true "Maximum nightly price"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Router /rooms/price-range [get]
// @Security BearerAuth
func (handler *Handler) GetRoomsByPriceRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minPrice, err := shared.ConvertStringToDecimal(query.Get(constant.RequestParamMinPrice))
	if err != nil {
		response.WithError(w, err)

		return
	}

	maxPrice, err := shared.ConvertStringToDecimal(query.Get(constant.RequestParamMaxPrice))
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetRoomsByPriceRange", false, dto.Filter{MinPrice: &minPrice, MaxPrice: &maxPrice})
}

// GetRoomStats returns room totals and the occupancy rate.
// @Summary Get room statistics
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.RoomStatsResponse]
// @Failure 500 {object} response.Error
// @Router /rooms/stats [get]
// @Security BearerAuth
func (handler *Handler) GetRoomStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// GetRoomByNumber retrieves a room by its room number.
// @Summary Get a room by number
// @Tags Room
// @Produce json
// @Param number path string true "Room number"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /rooms/number/{number} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByNumber")
	defer scope.End()

	room, err := handler.service.GetByNumber(ctx, chi.URLParam(r, paramNumber))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by number")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Only the provided fields are changed.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	var req dto.UpdateRoomRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update room request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoomStatus sets the room status.
// @Summary Update room status
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param status query string true "New status" Enums(AVAILABLE, OCCUPIED, MAINTENANCE, OUT_OF_ORDER)
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomStatus")
	defer scope.End()

	status := r.URL.Query().Get(constant.RequestParamStatus)

	room, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Param id path string true "Room ID"
// @Success 204 "Room deleted"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithNoContent(w)
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, name string, paged bool, filter dto.Filter) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, paged)

	rooms, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}
