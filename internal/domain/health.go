package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual service.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
	Detail      string `json:"detail,omitempty"`
}

// UpstreamMetrics is returned by GET /v1/metrics/upstream.
type UpstreamMetrics struct {
	Operations       map[string]OperationMetrics `json:"operations"`
	CacheHitRate     float64                     `json:"cacheHitRate"`
	TransfersOK      int64                       `json:"transfersSucceeded"`
	TransfersInvalid int64                       `json:"transfersRejected"`
	TransfersFailed  int64                       `json:"transfersFailed"`
}

// OperationMetrics summarizes the calls made for one facade operation.
type OperationMetrics struct {
	Calls           int64   `json:"calls"`
	APIErrors       int64   `json:"apiErrors"`
	TransportErrors int64   `json:"transportErrors"`
	AvgLatencyMs    float64 `json:"avgLatencyMs"`
}
