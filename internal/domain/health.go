package domain

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status       string `json:"status"` // healthy, degraded
	Accounts     int    `json:"accounts"`
	Transactions int    `json:"transactions"`
	Bills        int    `json:"bills"`
}
