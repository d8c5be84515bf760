package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

type PaymentRequest struct {
	OrderID uint             `json:"order_id" binding:"required"`
	Amount  *decimal.Decimal `json:"amount"`
	Method  string           `json:"method"`
}

var internalMethods = map[string]bool{"cash": true, "card": true}

// settlePayment records a completed payment against the order and applies the
// payment-settled event: the order becomes completed and paid no matter which
// state it was in before.
func settlePayment(order *models.Order, req PaymentRequest, defaultMethod string) (*models.Payment, error) {
	amount := order.TotalAmount
	if req.Amount != nil {
		// Caller-supplied override, not reconciled against the order total.
		amount = *req.Amount
	}
	method := req.Method
	if method == "" {
		method = defaultMethod
	}

	payment := models.Payment{
		OrderID:   order.ID,
		Reference: uuid.NewString(),
		Amount:    amount,
		Method:    method,
		Status:    "completed",
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	order.Status = statemachine.Settle(order.Status)
	order.PaymentStatus = models.PaymentPaid
	order.PaymentMethod = method
	if err := config.DB.Model(order).Updates(map[string]interface{}{
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"payment_method": order.PaymentMethod,
	}).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// reviewURL is the post-payment rating link encoded into the QR code
func reviewURL(orderID uint) string {
	return fmt.Sprintf("%s/rate?order_id=%d", config.App.BaseURL, orderID)
}

// InternalPayment settles an order paid at the counter (cash or card) and
// returns a review link plus its QR code for the printed bill.
func InternalPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.Method != "" && !internalMethods[req.Method] {
		respondFieldErrors(c, map[string][]string{"method": {"must be one of: cash, card"}})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}

	payment, err := settlePayment(&order, req, "cash")
	if err != nil {
		respondInternal(c)
		return
	}

	link := reviewURL(order.ID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		respondInternal(c)
		return
	}

	respondOK(c, gin.H{
		"review_url":     link,
		"qr_code_base64": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"status":         payment.Status,
		"payment":        payment,
	}, "created")
}

// VnpayPayment settles an order through the VNPay channel and returns the
// signed redirect URL to the sandbox checkout page.
func VnpayPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}

	if req.Method == "" {
		req.Method = "VNPay"
	}
	payment, err := settlePayment(&order, req, "VNPay")
	if err != nil {
		respondInternal(c)
		return
	}

	paymentURL := buildVnpayURL(c.ClientIP(), order.ID, payment)
	respondOK(c, gin.H{
		"payment_url": paymentURL,
		"url":         paymentURL,
		"status":      payment.Status,
		"payment":     payment,
	}, "created")
}

// buildVnpayURL assembles the gateway redirect: sorted vnp_* parameters plus
// an HMAC-SHA512 secure hash over the unencoded key=value string, amount in
// hundredths per the provider's format.
func buildVnpayURL(clientIP string, orderID uint, payment *models.Payment) string {
	amount := payment.Amount.Mul(decimal.NewFromInt(100))
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_TmnCode":    config.App.VNPayTmnCode,
		"vnp_Amount":     amount.StringFixed(0),
		"vnp_Command":    "pay",
		"vnp_CreateDate": time.Now().Format("20060102150405"),
		"vnp_CurrCode":   "VND",
		"vnp_IpAddr":     clientIP,
		"vnp_Locale":     "vn",
		"vnp_OrderInfo":  "Thanh toan don hang #" + strconv.FormatUint(uint64(orderID), 10),
		"vnp_OrderType":  "billpayment",
		"vnp_ReturnUrl":  config.App.VNPayReturnURL,
		"vnp_TxnRef":     payment.Reference,
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hashData := ""
	query := url.Values{}
	for i, k := range keys {
		if i > 0 {
			hashData += "&"
		}
		hashData += k + "=" + params[k]
		query.Set(k, params[k])
	}

	mac := hmac.New(sha512.New, []byte(config.App.VNPayHashSecret))
	mac.Write([]byte(hashData))
	secureHash := hex.EncodeToString(mac.Sum(nil))

	return config.App.VNPayURL + "?" + query.Encode() +
		"&vnp_SecureHashType=SHA512&vnp_SecureHash=" + secureHash
}

// VnpayCallback acknowledges the gateway return by echoing the received
// parameters. No signature verification is performed here.
func VnpayCallback(c *gin.Context) {
	params := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	respondOK(c, gin.H{"params": params}, "callback_received")
}
