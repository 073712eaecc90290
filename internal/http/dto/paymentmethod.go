package dto

// CreatePaymentMethodRequest represents the request to create a payment method
type CreatePaymentMethodRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
	MerchantID  string `json:"merchant_id" validate:"required,max=100"`
	SecretKey   string `json:"secret_key" validate:"required,max=255"`
	HashTypeID  int64  `json:"hash_type_id" validate:"omitempty,min=1"`
	Activated   bool   `json:"activated"`
}

// UpdatePaymentMethodRequest represents a partial update to a payment method
type UpdatePaymentMethodRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	MerchantID  *string `json:"merchant_id,omitempty" validate:"omitempty,max=100"`
	SecretKey   *string `json:"secret_key,omitempty" validate:"omitempty,max=255"`
	HashTypeID  *int64  `json:"hash_type_id,omitempty" validate:"omitempty,min=1"`
	Activated   *bool   `json:"activated,omitempty"`
}

// BulkCreatePaymentMethodRequest represents a bulk create request
type BulkCreatePaymentMethodRequest struct {
	Records []CreatePaymentMethodRequest `json:"records" validate:"required,min=1,dive"`
}

// BulkDeletePaymentMethodRequest represents a bulk delete request
type BulkDeletePaymentMethodRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// BulkResultResponse reports how many records a bulk operation touched
type BulkResultResponse struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}
