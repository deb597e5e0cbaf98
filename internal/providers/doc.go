// Package providers holds service providers registered in the service
// registry. Each exposes Definition for metadata and Execute to run a tool.
//
// Available Providers:
//   - browser (subpackage): tabs, navigation, search and the web archive
//   - System: runtime information and result cache maintenance
//
// Example Usage:
//
//	sys := providers.NewSystem(app.Cache(), app)
//	result, err := sys.Execute(ctx, "system.cache_stats", nil, nil)
package providers
