package handlers

import (
	"context"
	"net/http"

	"busdepot/internal/domain"
	"busdepot/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type pdfFunc func(ctx context.Context, requestID string) ([]byte, string, error)

func sendPDF(c *gin.Context, kind domain.Kind, build pdfFunc) {
	pdfBytes, filename, err := build(c.Request.Context(), middleware.GetRequestID(c))
	switch {
	case domain.IsNotFound(err):
		c.String(http.StatusNotFound, kind.Title()+" not found")
		return
	case err != nil:
		c.String(http.StatusInternalServerError, "Error generating "+string(kind)+" document")
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /bus-details/:busId/card.pdf
func (h *Handlers) BusCard(c *gin.Context) {
	busID := c.Param("busId")
	sendPDF(c, domain.KindBus, func(ctx context.Context, rid string) ([]byte, string, error) {
		return h.Docs.BusCard(ctx, rid, busID)
	})
}

// GET /driver-details/:drivername/card.pdf
func (h *Handlers) DriverCard(c *gin.Context) {
	name := c.Param("drivername")
	sendPDF(c, domain.KindDriver, func(ctx context.Context, rid string) ([]byte, string, error) {
		return h.Docs.DriverCard(ctx, rid, name)
	})
}

// GET /trip-details/sheet.pdf?to=&fro=
func (h *Handlers) TripSheet(c *gin.Context) {
	to, fro := c.Query("to"), c.Query("fro")
	sendPDF(c, domain.KindTrip, func(ctx context.Context, rid string) ([]byte, string, error) {
		return h.Docs.TripSheet(ctx, rid, to, fro)
	})
}
