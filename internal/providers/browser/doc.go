/*
Package browser provides the simulated web browser service.

# Overview

The App ties the browser together. It owns the address codec, the shared
result cache, the location resolver, the tab registry and the archive
viewer. The Provider exposes the App as a service with browser.* tools,
the same way the other services are exposed through the registry.

# Navigation

Every navigation runs in three steps:

 1. Dispatch a Navigate, Back or Forward action to the tab. This updates
    history and issues a new request sequence.
 2. Resolve the tab's location with no lock held.
 3. Dispatch ApplyPage with the sequence from step 1. If the tab has moved
    on in the meantime the result is dropped.

A slow resolution can therefore never overwrite a newer page.

# Hydration

StartHydration fills the cache in the background, from the persisted tier
first and from the seed file when that tier is empty or expired. Tabs that
showed the cache-unavailable page are reloaded once hydration lands.

# Events

Subscribe returns a channel of tab events (opened, closed, activated,
updated) for live front ends such as the websocket handler. Slow
subscribers drop events rather than block navigation.

# Usage

	app := browser.NewApp(browser.DefaultConfig(), browser.Deps{Store: kv, Logger: log})
	app.StartHydration(ctx)
	tab, err := app.Navigate(ctx, app.Active().ID, "https://a.example/x")
*/
package browser
