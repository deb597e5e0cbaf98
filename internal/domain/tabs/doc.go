// Package tabs owns the browser's open tabs.
//
// The Registry keeps tabs in display order with one active tab, enforces a
// runtime-adjustable capacity and never lets the last tab close. All
// per-tab state changes go through Dispatch, which applies one Action and
// returns a copy of the resulting tab.
//
// Each navigation bumps the tab's request sequence. Resolution happens
// outside the registry; its result comes back as ApplyPage carrying the
// sequence it was issued for, and results for an older sequence are
// rejected with ErrStaleRequest.
package tabs
