package dto

// GeneratePaymentRequest represents the request to generate a payment URL
type GeneratePaymentRequest struct {
	Gateway      string  `json:"gateway" validate:"required,oneof=billplz senangpay chip stripe-my stripe-sg"`
	Name         string  `json:"name" validate:"required,max=100"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	MobileNumber string  `json:"mobile_number" validate:"required,max=20"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Description  string  `json:"description" validate:"required,max=255"`
}

// GeneratePaymentResponse represents a successful payment URL response
type GeneratePaymentResponse struct {
	Data    string `json:"data"`
	Message string `json:"message"`
}

// BillplzCallbackRequest represents the webhook payload from Billplz.
// Billplz posts form-encoded fields; amounts arrive as minor-unit strings.
type BillplzCallbackRequest struct {
	ID                string `json:"id"`
	CollectionID      string `json:"collection_id"`
	Paid              bool   `json:"paid"`
	State             string `json:"state"`
	Amount            string `json:"amount"`
	PaidAmount        string `json:"paid_amount"`
	DueAt             string `json:"due_at"`
	Email             string `json:"email"`
	Mobile            string `json:"mobile"`
	Name              string `json:"name"`
	URL               string `json:"url"`
	PaidAt            string `json:"paid_at"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	XSignature        string `json:"x_signature"`
}

// CallbackResponse represents the acknowledgement sent back to the provider
type CallbackResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse represents a generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
