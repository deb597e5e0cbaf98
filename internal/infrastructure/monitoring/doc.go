/*
Package monitoring provides Prometheus metrics for the browser backend.

# Overview

Metrics cover the HTTP surface, service tool calls, navigations and their
resolved views, the two-tier result cache, search outcomes and open tabs.
All collectors are registered on a caller-supplied Registerer so tests can
use a private registry.

A nil *Metrics records nothing, which keeps domain code free of nil checks.

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "browser", "navigate")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
