package dto

import "github.com/google/uuid"

type CheckoutResponse struct {
	OrderId     uuid.UUID `json:"order_id"`
	RedirectURL string    `json:"redirect_url"`
	Token       string    `json:"token"`
}

type PlanResponse struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	Currency     string   `json:"currency"`
	DailyAiLimit int      `json:"daily_ai_limit"`
	Features     []string `json:"features"`
}

// MidtransWebhookRequest is the notification payload posted by Midtrans.
// SignatureKey is SHA512(order_id + status_code + gross_amount + server key).
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}
