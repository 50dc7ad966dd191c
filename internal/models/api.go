package models

// Request types

// AddItemRequest adds a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest sets the absolute quantity of an existing cart line.
// Zero or negative removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Response types

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

type CategoryListResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

// CartView is the cart as returned to the storefront: lines in insertion
// order plus derived totals and the badge count.
type CartView struct {
	Lines  []CartLine `json:"lines"`
	Totals CartTotals `json:"totals"`
	Count  int        `json:"count"`
}

type CartResponse struct {
	Success bool     `json:"success"`
	Data    CartView `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type TotalsResponse struct {
	Success bool       `json:"success"`
	Data    CartTotals `json:"data"`
}

// OrderPlacedData reports a successfully submitted order.
type OrderPlacedData struct {
	OrderID  string        `json:"orderId"`
	Snapshot OrderSnapshot `json:"snapshot"`
}

type OrderResponse struct {
	Success bool            `json:"success"`
	Data    OrderPlacedData `json:"data"`
	Message *string         `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
