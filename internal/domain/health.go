package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual component.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// CalculatorMetrics is returned by GET /api/metrics/calculator.
type CalculatorMetrics struct {
	SessionsCreated       int64   `json:"sessionsCreated"`
	TogglesApplied        int64   `json:"togglesApplied"`
	TogglesIgnored        int64   `json:"togglesIgnored"`
	DashboardCalculations int64   `json:"dashboardCalculations"`
	RejectedCalculations  int64   `json:"rejectedCalculations"`
	SingleCalculations    int64   `json:"singleCalculations"`
	SessionHitRate        float64 `json:"sessionHitRate"`
	Period                string  `json:"period"`
}
