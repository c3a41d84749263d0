package domain

// Report агрегированный отчет по клиентам за период регистрации
type Report struct {
	Customers     []Customer       `json:"customers"`
	CustomerCount int              `json:"customer_count"`
	OrderCount    int              `json:"order_count"`
	TotalRevenue  float64          `json:"total_revenue"`
	StartDate     *Date            `json:"start_date,omitempty"`
	EndDate       *Date            `json:"end_date,omitempty"`
	Warnings      ValidationErrors `json:"warnings,omitempty"`
}

// Statistics сводные счетчики по всей базе
type Statistics struct {
	TotalCustomers int     `json:"total_customers"`
	TotalOrders    int     `json:"total_orders"`
	CustomersToday int     `json:"customers_today"`
	OrdersToday    int     `json:"orders_today"`
	TotalRevenue   float64 `json:"total_revenue"`
}
