// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/domain/cart"
	"github.com/your-org/bookverse-storefront/internal/domain/checkout"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/bookverse-storefront/internal/pkg/pdf"
)

// CheckoutHandler handles the three-step checkout flow and receipts
type CheckoutHandler struct {
	api *backend.Client
	pdf *pdf.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(api *backend.Client, pdfService *pdf.Service) *CheckoutHandler {
	return &CheckoutHandler{
		api: api,
		pdf: pdfService,
	}
}

// service builds this session's checkout service
func (h *CheckoutHandler) service(c *gin.Context) *checkout.Service {
	return checkout.NewService(middleware.StoreFromContext(c), middleware.SinkFromContext(c), h.api)
}

// ValidateShipping checks the step-one form without placing anything
func (h *CheckoutHandler) ValidateShipping(c *gin.Context) {
	var req checkout.ShippingDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.service(c).ValidateShipping(req); err != nil {
		respond(c, http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Shipping details accepted",
	})
}

// ValidatePayment checks the step-two form without placing anything
func (h *CheckoutHandler) ValidatePayment(c *gin.Context) {
	var req checkout.PaymentDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.service(c).ValidatePayment(req); err != nil {
		respond(c, http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Payment details accepted",
	})
}

// PlaceOrder freezes the cart into an order. The coupon rate lives only
// in memory, so the code rides along with the final submit.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		Shipping checkout.ShippingDetails `json:"shipping"`
		Payment  checkout.PaymentDetails  `json:"payment"`
		Coupon   string                   `json:"coupon"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	engine := cart.NewEngine(c.Request.Context(), middleware.StoreFromContext(c), middleware.SinkFromContext(c))
	if req.Coupon != "" {
		if err := engine.ApplyCoupon(req.Coupon); err != nil {
			respond(c, http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}

	guard := middleware.GuardFromContext(c)
	user := ""
	if u := guard.CurrentUser(); u != nil {
		user = u.GetDisplayName()
	} else if a := guard.CurrentAdmin(); a != nil {
		user = a.Name
	}

	order, err := h.service(c).PlaceOrder(c.Request.Context(), engine, user, req.Shipping, req.Payment)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cart.ErrEmptyCart) || errors.Is(err, checkout.ErrValidation) {
			status = http.StatusBadRequest
		}
		respond(c, status, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    order,
	})
}

// LastOrder returns the session's most recently placed order
func (h *CheckoutHandler) LastOrder(c *gin.Context) {
	order, err := h.service(c).LastOrder(c.Request.Context())
	if err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order found",
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": order,
	})
}

// Receipt renders the last order as a downloadable PDF
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	order, err := h.service(c).LastOrder(c.Request.Context())
	if err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No order found",
		})
		return
	}

	buf, err := h.pdf.GenerateReceipt(order)
	if err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
