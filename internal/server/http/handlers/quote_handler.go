package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
)

// QuoteHandler manages quote endpoints.
type QuoteHandler struct {
	facade QuoteFacade
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade QuoteFacade) *QuoteHandler {
	return &QuoteHandler{facade: facade}
}

// Create handles POST /api/quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	quote, err := h.facade.CreateQuote(c.Request.Context(), req.Request())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.QuoteEnvelope{Success: true, Quote: dto.NewQuoteResponse(*quote)})
}

// List handles GET /api/quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	var filter model.QuoteFilter
	if s := c.Query("status"); s != "" {
		status := model.QuoteStatus(s)
		filter.Status = &status
	}

	quotes, page, err := h.facade.Quotes(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	response := dto.QuoteListResponse{
		Success: true,
		Quotes:  make([]dto.QuoteResponse, 0, len(quotes)),
		HasMore: len(quotes) == page.Limit,
	}
	for _, q := range quotes {
		response.Quotes = append(response.Quotes, dto.NewQuoteResponse(q))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quote, err := h.facade.Quote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteEnvelope{Success: true, Quote: dto.NewQuoteResponse(*quote)})
}

// Update handles PUT /api/quotes/:id. Only allow-listed fields are applied.
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	quote, err := h.facade.UpdateQuote(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteEnvelope{Success: true, Quote: dto.NewQuoteResponse(*quote)})
}

// Delete handles DELETE /api/quotes/:id.
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteQuote(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Message: "Quote deleted"})
}
