package model

import "github.com/shopspring/decimal"

// BusinessMetrics is the aggregate dashboard snapshot computed from the
// store on demand. All ratios are 0 when their denominator is 0.
type BusinessMetrics struct {
	ActiveConversations int             `json:"activeConversations"`
	TotalConversations  int             `json:"totalConversations"`
	ConversionRate      float64         `json:"conversionRate"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue   decimal.Decimal `json:"averageOrderValue"`
	TotalOrders         int             `json:"totalOrders"`
	CompletedOrders     int             `json:"completedOrders"`
}
