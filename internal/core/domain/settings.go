package domain

// Settings is the single store profile row.
type Settings struct {
	StoreName         string `json:"storeName"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	AuditFields
}
