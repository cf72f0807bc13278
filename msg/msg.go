// Package msg defines all tea.Msg types dispatched within the storefront UI.
// It has no upstream imports (app, ui) to avoid import cycles.
package msg

import "github.com/miosa/storefront/catalog"

// -- Lifecycle --

// HealthResult from the remote catalog health check.
type HealthResult struct {
	Status     string
	Version    string
	Categories int
	Err        error
}

// -- Catalog --

// CatalogLoaded carries the initial catalog, or the error that prevented
// loading it.
type CatalogLoaded struct {
	Catalog *catalog.Catalog
	Source  string
	Err     error
}

// CatalogReloaded is sent by the file watcher after the catalog changed on
// disk. Err is set when the new file could not be parsed; the previous
// catalog stays on screen.
type CatalogReloaded struct {
	Catalog *catalog.Catalog
	Err     error
}

// -- Virtualization --

// Dispatch runs Fn on the update loop. Timers scheduled by the scroll
// throttle deliver their callbacks this way.
type Dispatch struct {
	Fn func()
}


// -- UI --

// TickMsg drives toast expiry.
type TickMsg struct{}

// ToggleHelp shows or hides the key help overlay.
type ToggleHelp struct{}
