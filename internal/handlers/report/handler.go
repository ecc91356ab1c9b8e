package report

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/report/service"
	"kingdom/shared/constant"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/bookings", handler.ExportBookings)
	})
}

// ExportBookings downloads the bookings checking in within the period as a spreadsheet.
// @Summary Export bookings report
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD), inclusive"
// @Param status query string false "Booking status"
// @Success 200 {file} file
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reports/bookings [get]
// @Security BearerAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	query := r.URL.Query()

	data, fileName, err := handler.service.Bookings(
		ctx,
		query.Get(constant.RequestParamStartDate),
		query.Get(constant.RequestParamEndDate),
		query.Get(constant.RequestParamStatus),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings report")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeXLSX, fileName, data)
}
