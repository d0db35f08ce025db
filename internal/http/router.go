package api

import (
	"log"

	intconfig "busdepot/internal/config"
	h "busdepot/internal/http/handlers"
	"busdepot/internal/http/middleware"
	"busdepot/web"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) (*gin.Engine, error) {
	views, err := web.Templates()
	if err != nil {
		return nil, err
	}
	h.UseFormFieldNames()

	r := gin.New()
	// card routes carry record keys that may contain an encoded "/"
	r.UseRawPath = true
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}
	r.SetHTMLTemplate(views)
	r.NoRoute(h.NotFound)

	r.GET("/", h.Page("index.tmpl"))
	r.GET("/thanku", hs.ThankYou)

	// Intake
	r.GET("/bus-details-form", h.Page("bus-details-form.tmpl"))
	r.POST("/submit-registration", hs.SubmitBus)
	r.GET("/driver-details-form", h.Page("driver-details-form.tmpl"))
	r.POST("/submit", hs.SubmitDriver)
	r.GET("/trip-details-form", h.Page("trip-details-form.tmpl"))
	r.POST("/submit-trip", hs.SubmitTrip)

	// Lookup
	r.GET("/bus-details", h.Page("bus-details.tmpl"))
	r.POST("/get-bus-details", hs.GetBusDetails)
	r.GET("/driver-details", h.Page("driver-details.tmpl"))
	r.POST("/get-driver-details", hs.GetDriverDetails)
	r.GET("/trip-details", h.Page("trip-details.tmpl"))
	r.POST("/get-trip-details", hs.GetTripDetails)

	if hs.Docs != nil {
		r.GET("/bus-details/:busId/card.pdf", hs.BusCard)
		r.GET("/driver-details/:drivername/card.pdf", hs.DriverCard)
		r.GET("/trip-details/sheet.pdf", hs.TripSheet)
	}

	r.GET("/health", h.Health)
	r.GET("/store-check", hs.StoreCheck)

	return r, nil
}
