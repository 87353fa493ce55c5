package ports

// Reloader pushes live-reload messages to connected browsers.
// Calls never block on slow clients and are no-ops when nobody is connected.
//
//go:generate mockgen -source=reloader.go -destination=mocks/mock_reloader.go -package=mocks
type Reloader interface {
	// Reload asks every browser to reload the page.
	Reload()
	// Inject asks every browser to swap the given stylesheets without reloading.
	Inject(paths []string)
	// Notify shows a transient message in every browser.
	Notify(message string)
}
