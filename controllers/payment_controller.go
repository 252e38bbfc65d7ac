package controllers

import (
	"net/http"

	"github.com/Govind-619/BuyMeAChai/middleware"
	"github.com/Govind-619/BuyMeAChai/services"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	ChaiCount int    `json:"chaiCount"`
}

type verifyPaymentRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Name              string `json:"name"`
	Message           string `json:"message"`
	Amount            int64  `json:"amount"`
}

// POST /api/create-order
func (ctl *ChaiController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.RespondError(c, utils.UnauthorizedError(middleware.MsgMissingToken, nil))
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order request for user %s: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", nil)
		return
	}

	handle, err := ctl.orders.CreateOrder(c.Request.Context(), services.OrderRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Name:        req.Name,
		Message:     req.Message,
		ChaiCount:   req.ChaiCount,
		RequesterID: user.ID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handle)
}

// POST /api/verify-payment
func (ctl *ChaiController) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.RespondError(c, utils.UnauthorizedError(middleware.MsgMissingToken, nil))
		return
	}

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify-payment request for user %s: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", nil)
		return
	}

	result, err := ctl.confirmations.Confirm(c.Request.Context(), services.PaymentConfirmation{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
		Name:      req.Name,
		Message:   req.Message,
		Amount:    req.Amount,
		UserID:    user.ID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Payment verified and message stored"
	if result.State == services.StateAlreadyRecorded {
		message = "Payment already recorded"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// GET /api/pricing
func (ctl *ChaiController) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"unit_price": ctl.settings.ChaiPrice,
		"currency":   ctl.orders.DefaultCurrency(),
		"key_id":     ctl.orders.KeyID(),
	})
}
