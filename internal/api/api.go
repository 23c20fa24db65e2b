package api

import (
	"net/http"
	"strconv"

	"tcg-market/internal/models"
	"tcg-market/internal/services"
	"tcg-market/internal/services/tcgio"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// APIHandler is the admin/ops boundary around the sync pipeline: trigger
// a run, inspect cards and price history, watch progress. No auth and no
// rendering live here; that belongs to the fronting application.
type APIHandler struct {
	db        *gorm.DB
	sync      *services.SyncService
	converter *services.CurrencyConverter
	hub       *ProgressHub
}

func SetupRoutes(r *gin.RouterGroup, db *gorm.DB, syncSvc *services.SyncService, converter *services.CurrencyConverter) *APIHandler {
	handler := &APIHandler{
		db:        db,
		sync:      syncSvc,
		converter: converter,
		hub:       NewProgressHub(),
	}
	syncSvc.SetProgressFunc(handler.hub.Broadcast)

	sync := r.Group("/sync")
	{
		sync.POST("", handler.TriggerSync)
		sync.GET("/runs", handler.ListSyncRuns)
		sync.GET("/ws", handler.hub.Serve)
	}

	cards := r.Group("/cards")
	{
		cards.GET("", handler.ListCards)
		cards.GET("/:id/history", handler.GetPriceHistory)
	}

	return handler
}

type syncRequest struct {
	// Either a pre-serialized query or structured filter fields.
	Query  string `json:"query"`
	Name   string `json:"name"`
	SetID  string `json:"set_id"`
	Number string `json:"number"`

	// Optional overrides stamped onto the first committed record.
	ImageURL  string `json:"image_url"`
	SalePrice *int64 `json:"sale_price"`
}

// TriggerSync runs a synchronization synchronously and returns the
// aggregate summary. Partial failures do not fail the request; the caller
// decides whether to re-trigger.
func (h *APIHandler) TriggerSync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	query := req.Query
	if query == "" {
		filter := tcgio.SearchFilter{Name: req.Name, SetID: req.SetID, Number: req.Number}
		q, err := filter.Query()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = q
	}

	overrides := services.Overrides{SalePrice: req.SalePrice}
	if req.ImageURL != "" {
		overrides.ImageURL = &req.ImageURL
	}

	summary := h.sync.Run(query, overrides)
	c.JSON(http.StatusOK, summary)
}

func (h *APIHandler) ListSyncRuns(c *gin.Context) {
	var runs []models.SyncRun
	if err := h.db.Order("started_at desc").Limit(50).Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

type cardResponse struct {
	models.Card
	CurrentPrice *priceResponse `json:"current_price,omitempty"`
}

type priceResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

// ListCards returns cards with their current price, including a USD
// display amount derived via the injected conversion rate.
func (h *APIHandler) ListCards(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var cards []models.Card
	q := h.db.Order("id").Limit(limit).Offset(offset)
	if set := c.Query("set"); set != "" {
		q = q.Where("set_name = ?", set)
	}
	if err := q.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ids := make([]uint, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}
	var prices []models.MarketPrice
	if len(ids) > 0 {
		if err := h.db.Where("card_id IN ?", ids).Find(&prices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	priceByCard := make(map[uint]models.MarketPrice, len(prices))
	for _, p := range prices {
		priceByCard[p.CardID] = p
	}

	out := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		resp := cardResponse{Card: card}
		if p, ok := priceByCard[card.ID]; ok {
			resp.CurrentPrice = &priceResponse{
				Amount:    p.Price,
				Currency:  p.Currency,
				AmountUSD: h.converter.ToUSD(p.Price, p.Currency),
			}
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *APIHandler) GetPriceHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	var history []models.PriceHistory
	if err := h.db.Where("card_id = ?", id).Order("recorded_at asc").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
