package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderCreateParams struct {
	CoinSymbol string          `binding:"required,min=1,max=10" json:"coin"`
	Amount     decimal.Decimal `binding:"required"              json:"amount"`
}

type OrderResponse struct {
	ID         int64                  `json:"id"`
	CoinSymbol string                 `json:"coin"`
	Amount     decimal.Decimal        `json:"amount"`
	Status     domain.OrderStatusType `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		CoinSymbol: order.CoinSymbol,
		Amount:     order.Amount,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}
}

// Create POST RouteGroup + OrdersRoute. Принимает заявку на покупку монет.
// Сеттлмент батча может случиться внутри этого же запроса - тогда статус
// заявки в ответе уже терминальный.
func (o *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params OrderCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, createErr := o.orderSvs.Create(reqCtx, currentUserID, params.CoinSymbol, params.Amount)
	if createErr != nil {
		var exchangeErr *domain.ExchangeError

		switch {
		case errors.Is(createErr, domain.ErrInvalidAmount), errors.Is(createErr, domain.ErrCoinNotFound):
			c.AbortWithStatus(http.StatusUnprocessableEntity)
		case errors.Is(createErr, domain.ErrNotEnoughBalance):
			c.AbortWithStatus(http.StatusPaymentRequired)
		case errors.As(createErr, &exchangeErr):
			// заявка создана и помечена failed, списание не отменено.
			_ = c.Error(createErr).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"error": "exchange execution failed",
				"order": newOrderResponse(order),
			})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, createErr).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// Index GET RouteGroup + OrdersRoute.
func (o *OrdersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()
	orders, err := o.orderSvs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = newOrderResponse(&order)
	}

	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + OrderRoute. Чужие заявки не отдаем - для них тот же 404.
func (o *OrdersHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	orderID, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.FindByID(reqCtx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	if order.UserID != currentUserID {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(order))
}
