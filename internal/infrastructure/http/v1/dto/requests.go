package dto

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateProductRequest is the product create/update payload.
type CreateProductRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UnitPrice   string `json:"unitPrice" binding:"required"`
	Cost        string `json:"cost" binding:"required"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"minStock"`
	Active      *bool  `json:"active"`
}

// AdjustStockRequest is the manual stock adjustment payload.
type AdjustStockRequest struct {
	Type     string `json:"type" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateCustomerRequest is the customer create/update payload.
type CreateCustomerRequest struct {
	DocumentType   string `json:"documentType" binding:"required"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Active         *bool  `json:"active"`
}

// CreateAccountRequest is the ledger account create/update payload.
type CreateAccountRequest struct {
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	ParentID *string `json:"parentId"`
	Active   *bool   `json:"active"`
}

// SaleItemRequest is one line of a sale. UnitPrice is optional and
// overrides the catalog price for this line.
type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	UnitPrice string `json:"unitPrice"`
}

// CreateSaleRequest is the sale payload.
type CreateSaleRequest struct {
	Date          string            `json:"date" binding:"required"`
	CustomerID    *string           `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod"`
	Discount      string            `json:"discount"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" binding:"required"`
}
