package handlers

import (
	"net/http"

	"busdepot/internal/http/middleware"
	"busdepot/internal/utils"

	"github.com/gin-gonic/gin"
)

// Page renders a view with no data. Used for the welcome page, the intake
// forms and the lookup forms.
func Page(view string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, view, gin.H{})
	}
}

// GET /thanku
func (h *Handlers) ThankYou(c *gin.Context) {
	data := gin.H{}
	if token := c.Query("receipt"); token != "" && h.Receipts != nil {
		receipt, err := h.Receipts.Verify(token)
		if err != nil {
			utils.LogWarn(middleware.GetRequestID(c), "receipt", "verify", err.Error())
		} else {
			data["receipt"] = receipt
		}
	}
	c.HTML(http.StatusOK, "thanku.tmpl", data)
}
