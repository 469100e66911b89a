// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus collectors for the API.

	pickr_http_requests_total{route,code}
	pickr_http_request_duration_seconds{route}
	pickr_comparisons_recorded_total{algorithm}
	pickr_sessions_started_total{algorithm}
	pickr_sessions_completed_total{algorithm}

route is the ServeMux pattern ("POST /sessions/{id}/comparisons"), never
the raw path, so label cardinality stays bounded. Handler serves everything
at GET /metrics.
*/
package metrics
