package handlers

import (
	"net/url"

	"busdepot/internal/domain"
	"busdepot/internal/http/middleware"
	"busdepot/internal/services"
	"busdepot/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handlers serves the HTML pages and form posts. Receipts and Docs are
// optional; without them /thanku is plain and the PDF routes are not mounted.
type Handlers struct {
	Records  *services.RecordService
	Receipts *services.ReceiptService
	Docs     *services.DocsService
}

func New(records *services.RecordService, receipts *services.ReceiptService, docs *services.DocsService) *Handlers {
	return &Handlers{Records: records, Receipts: receipts, Docs: docs}
}

// thankYouURL points at /thanku, carrying a signed receipt when possible.
func (h *Handlers) thankYouURL(c *gin.Context, kind domain.Kind, key string) string {
	if h.Receipts == nil {
		return "/thanku"
	}
	token, err := h.Receipts.Issue(kind, key)
	if err != nil {
		utils.LogWarn(middleware.GetRequestID(c), string(kind), "receipt", err.Error())
		return "/thanku"
	}
	return "/thanku?" + url.Values{"receipt": {token}}.Encode()
}
