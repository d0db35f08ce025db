package handlers

import (
	"net/http"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
	"busdepot/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// renderLookupMiss re-renders the lookup form: a soft message with 200 when
// nothing matched, a generic error with 500 when the store failed.
func renderLookupMiss(c *gin.Context, kind domain.Kind, view string, err error) {
	if domain.IsNotFound(err) {
		c.HTML(http.StatusOK, view, gin.H{"error": kind.Title() + " not found"})
		return
	}
	c.HTML(http.StatusInternalServerError, view, gin.H{"error": "Error retrieving " + string(kind) + " details"})
}

// POST /get-bus-details
func (h *Handlers) GetBusDetails(c *gin.Context) {
	bus, err := h.Records.LookupBus(c.Request.Context(), middleware.GetRequestID(c), c.PostForm("busId"))
	if err != nil {
		renderLookupMiss(c, domain.KindBus, "bus-details.tmpl", err)
		return
	}
	c.HTML(http.StatusOK, "bus-details-details.tmpl", gin.H{"busDetails": bus})
}

// POST /get-driver-details
func (h *Handlers) GetDriverDetails(c *gin.Context) {
	driver, err := h.Records.LookupDriver(c.Request.Context(), middleware.GetRequestID(c), c.PostForm("drivername"))
	if err != nil {
		renderLookupMiss(c, domain.KindDriver, "driver-details.tmpl", err)
		return
	}
	c.HTML(http.StatusOK, "driver-details-details.tmpl", gin.H{"driverDetails": driver})
}

// POST /get-trip-details
func (h *Handlers) GetTripDetails(c *gin.Context) {
	var form models.TripLookupForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.HTML(http.StatusBadRequest, "trip-details.tmpl", gin.H{"error": bindingError(err).Error()})
		return
	}

	trips, err := h.Records.LookupTrips(c.Request.Context(), middleware.GetRequestID(c), form.To, form.Fro)
	if err != nil {
		renderLookupMiss(c, domain.KindTrip, "trip-details.tmpl", err)
		return
	}
	c.HTML(http.StatusOK, "trip-details-details.tmpl", gin.H{
		"tripDetails": trips,
		"to":          form.To,
		"fro":         form.Fro,
	})
}
