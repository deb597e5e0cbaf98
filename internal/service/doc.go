// Package service provides the service registry.
//
// Providers describe themselves with a Definition (id, category, tools) and
// execute tool calls routed by the "<service>.<tool>" prefix of the tool ID.
// The registry lists services, scores them against free-text intents and
// records a metric for every execution.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(browser.NewProvider(app))
//	services := registry.Discover("archive snapshot", 5)
//	result, err := registry.Execute(ctx, "browser.navigate", params, appCtx)
package service
