package member

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/member/model"
	"kingdom/internal/domains/member/model/dto"
	"kingdom/internal/domains/member/service"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramEmail    = "email"
	paramCountry  = "country"
	paramPastorID = "pastorId"
)

type Handler struct {
	service service.Member
	otel    otel.Otel
}

func New(service service.Member, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/members", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMember)
		routerGroup.Get("/", handler.GetMembers)
		routerGroup.Get("/email/{email}", handler.GetMemberByEmail)
		routerGroup.Get("/vetting/{status}", handler.GetMembersByVetting)
		routerGroup.Get("/country/{country}", handler.GetMembersByCountry)
		routerGroup.Get("/pastor/{pastorId}", handler.GetMembersByPastor)
		routerGroup.Get("/{id}", handler.GetMemberByID)
		routerGroup.Put("/{id}", handler.UpdateMember)
		routerGroup.Patch("/{id}/vetting", handler.UpdateVetting)
		routerGroup.Patch("/{id}/assign-pastor/{pastorId}", handler.AssignPastor)
		routerGroup.Delete("/{id}", handler.DeleteMember)
	})
}

// CreateMember registers a member for vetting.
// @Summary Create a new member
// @Tags Member
// @Accept json
// @Produce json
// @Param request body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} response.Data[dto.MemberResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /members [post]
// @Security BearerAuth
func (handler *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMember")
	defer scope.End()

	var req dto.CreateMemberRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create member request")

		response.WithError(w, err)

		return
	}

	member, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create member")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, member)
}

// GetMembers lists members.
// @Summary Get all members
// @Tags Member
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param vetting_status query string false "Filter by vetting status"
// @Param country_of_residence query string false "Filter by country of residence"
// @Param pastor_id query string false "Filter by assigned pastor"
// @Success 200 {object} response.Data[dto.GetMembersResponse]
// @Router /members [get]
// @Security BearerAuth
func (handler *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	handler.list(w, r, "GetMembers", true, dto.Filter{
		VettingStatus:      query.Get(model.FieldVettingStatus),
		CountryOfResidence: query.Get(model.FieldCountryOfResidence),
		PastorID:           query.Get(model.FieldPastorID),
	})
}

// GetMemberByEmail retrieves a member by email.
// @Summary Get a member by email
// @Tags Member
// @Produce json
// @Param email path string true "Member email"
// @Success 200 {object} response.Data[dto.MemberResponse]
// @Failure 404 {object} response.Error
// @Router /members/email/{email} [get]
// @Security BearerAuth
func (handler *Handler) GetMemberByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMemberByEmail")
	defer scope.End()

	member, err := handler.service.GetByEmail(ctx, chi.URLParam(r, paramEmail))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member by email")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// GetMembersByVetting lists members in one vetting status.
// @Summary Get members by vetting status
// @Tags Member
// @Produce json
// @Param status path string true "Vetting status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} response.Data[dto.GetMembersResponse]
// @Failure 400 {object} response.Error
// @Router /members/vetting/{status} [get]
// @Security BearerAuth
func (handler *Handler) GetMembersByVetting(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, constant.RequestParamStatus)

	if err := validator.ValidateVar(status, model.TagVettingStatus); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetMembersByVetting", false, dto.Filter{VettingStatus: status})
}

// GetMembersByCountry lists members residing in one country.
// @Summary Get members by country of residence
// @Tags Member
// @Produce json
// @Param country path string true "Country of residence"
// @Success 200 {object} response.Data[dto.GetMembersResponse]
// @Router /members/country/{country} [get]
// @Security BearerAuth
func (handler *Handler) GetMembersByCountry(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetMembersByCountry", false, dto.Filter{CountryOfResidence: chi.URLParam(r, paramCountry)})
}

// GetMembersByPastor lists the members assigned to a pastor.
// @Summary Get members by pastor
// @Tags Member
// @Produce json
// @Param pastorId path string true "Pastor ID"
// @Success 200 {object} response.Data[dto.GetMembersResponse]
// @Router /members/pastor/{pastorId} [get]
// @Security BearerAuth
func (handler *Handler) GetMembersByPastor(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetMembersByPastor", false, dto.Filter{PastorID: chi.URLParam(r, paramPastorID)})
}

// GetMemberByID retrieves a member by its ID.
// @Summary Get a member by ID
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Data[dto.MemberResponse]
// @Failure 404 {object} response.Error
// @Router /members/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMemberByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMemberByID")
	defer scope.End()

	member, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateMember updates a member's details.
// @Summary Update a member by ID
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body dto.UpdateMemberRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.MemberResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /members/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMember")
	defer scope.End()

	var req dto.UpdateMemberRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update member request")

		response.WithError(w, err)

		return
	}

	member, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update member")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateVetting changes a member's vetting status.
// @Summary Update a member's vetting status
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Param status query string true "Vetting status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} response.Data[dto.MemberResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /members/{id}/vetting [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVetting")
	defer scope.End()

	member, err := handler.service.UpdateVetting(ctx, chi.URLParam(r, constant.RequestParamID), r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update member vetting status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// AssignPastor assigns a pastor to a member.
// @Summary Assign a pastor to a member
// @Tags Member
// @Produce json
// @Param id path string true "Member ID"
// @Param pastorId path string true "Pastor ID"
// @Success 200 {object} response.Data[dto.MemberResponse]
// @Failure 404 {object} response.Error
// @Router /members/{id}/assign-pastor/{pastorId} [patch]
// @Security BearerAuth
func (handler *Handler) AssignPastor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignPastor")
	defer scope.End()

	member, err := handler.service.AssignPastor(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramPastorID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign pastor")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, member)
}

// DeleteMember deletes a member without donations.
// @Summary Delete a member by ID
// @Tags Member
// @Param id path string true "Member ID"
// @Success 204 "Member deleted"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /members/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMember")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete member")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, name string, paged bool, filter dto.Filter) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, paged)

	members, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get members")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, members)
}
