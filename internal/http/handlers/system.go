package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /store-check
func (h *Handlers) StoreCheck(c *gin.Context) {
	driver, err := h.Records.StoreStatus(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, "store unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store OK", "driver": driver})
}
