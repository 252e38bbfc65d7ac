package controllers

import (
	"net/http"

	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

// TestPaymentResponse represents the simulated payment response
type TestPaymentResponse struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// SimulatePayment signs a fake payment for an order so the verify endpoint
// can be exercised without the checkout widget. Only routed outside production.
func (ctl *ChaiController) SimulatePayment(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		utils.BadRequest(c, "Order ID is required", nil)
		return
	}

	paymentID := "pay_test_" + orderID
	c.JSON(http.StatusOK, TestPaymentResponse{
		RazorpayOrderID:   orderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: gateway.GenerateSignature(orderID, paymentID, ctl.settings.KeySecret),
	})
}
