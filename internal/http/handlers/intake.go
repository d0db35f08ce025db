package handlers

import (
	"net/http"
	"strings"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
	"busdepot/internal/http/middleware"
	"busdepot/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// renderInvalid re-renders an intake form with the validation message.
func renderInvalid(c *gin.Context, kind domain.Kind, view string, err error) {
	verr := bindingError(err)
	utils.LogWarn(middleware.GetRequestID(c), string(kind), "register", verr.Error())
	c.HTML(http.StatusBadRequest, view, gin.H{"error": verr.Error()})
}

func saveFailed(c *gin.Context, kind domain.Kind) {
	c.String(http.StatusInternalServerError, "Error saving "+string(kind)+" registration")
}

// POST /submit-registration
func (h *Handlers) SubmitBus(c *gin.Context) {
	var form models.BusForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		renderInvalid(c, domain.KindBus, "bus-details-form.tmpl", err)
		return
	}

	bus, err := h.Records.RegisterBus(c.Request.Context(), middleware.GetRequestID(c), form)
	if err != nil {
		saveFailed(c, domain.KindBus)
		return
	}
	c.Redirect(http.StatusFound, h.thankYouURL(c, domain.KindBus, bus.BusID))
}

// POST /submit
func (h *Handlers) SubmitDriver(c *gin.Context) {
	var form models.DriverForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		renderInvalid(c, domain.KindDriver, "driver-details-form.tmpl", err)
		return
	}

	driver, err := h.Records.RegisterDriver(c.Request.Context(), middleware.GetRequestID(c), form)
	if err != nil {
		saveFailed(c, domain.KindDriver)
		return
	}
	c.Redirect(http.StatusFound, h.thankYouURL(c, domain.KindDriver, driver.DriverName))
}

// POST /submit-trip renders the thank-you page directly with the saved trip.
func (h *Handlers) SubmitTrip(c *gin.Context) {
	var form models.TripForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		renderInvalid(c, domain.KindTrip, "trip-details-form.tmpl", err)
		return
	}
	if raw, ok := c.GetPostForm("tripno"); !ok || strings.TrimSpace(raw) == "" {
		renderInvalid(c, domain.KindTrip, "trip-details-form.tmpl",
			domain.ValidationError{Field: "tripno", Msg: "is required"})
		return
	}

	trip, err := h.Records.RegisterTrip(c.Request.Context(), middleware.GetRequestID(c), form)
	if err != nil {
		saveFailed(c, domain.KindTrip)
		return
	}
	c.HTML(http.StatusOK, "thanku.tmpl", gin.H{"tripDetails": trip})
}
