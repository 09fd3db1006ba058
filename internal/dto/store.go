package dto

// CreateCustomerRequest defines the data needed to add a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateSettingsRequest replaces the store profile.
type UpdateSettingsRequest struct {
	StoreName         string `json:"storeName" binding:"required"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email" binding:"omitempty,email"`
	LowStockThreshold int    `json:"lowStockThreshold" binding:"min=0"`
}
