package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskNotFound is returned when a requested task or pipeline is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskAlreadyExists is returned when a task name is registered twice.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrNoTargetsSpecified is returned when no task name is given.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildExecutionFailed marks a failed task or pipeline run at the application boundary.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrGeneratorFailed is returned when the site generator exits with a non-zero status.
	ErrGeneratorFailed = zerr.New("Hugo build failed")

	// ErrGeneratorStartFailed is returned when the site generator process cannot be started.
	ErrGeneratorStartFailed = zerr.New("failed to start site generator")

	// ErrStyleBuildFailed is returned when the stylesheet pipeline reports errors.
	ErrStyleBuildFailed = zerr.New("stylesheet build failed")

	// ErrScriptBuildFailed is returned when the script bundler reports errors.
	ErrScriptBuildFailed = zerr.New("script bundle failed")

	// ErrSourceGlobFailed is returned when a source glob cannot be expanded.
	ErrSourceGlobFailed = zerr.New("failed to expand source glob")

	// ErrIconReadFailed is returned when an icon file cannot be read.
	ErrIconReadFailed = zerr.New("failed to read icon")

	// ErrIconMinifyFailed is returned when an icon cannot be minified.
	ErrIconMinifyFailed = zerr.New("failed to minify icon")

	// ErrIconParseFailed is returned when an icon has no usable root <svg> element.
	ErrIconParseFailed = zerr.New("failed to parse icon")

	// ErrPartialReadFailed is returned when the sprite partial cannot be read.
	ErrPartialReadFailed = zerr.New("failed to read sprite partial")

	// ErrPartialWriteFailed is returned when the sprite partial cannot be written.
	ErrPartialWriteFailed = zerr.New("failed to write sprite partial")

	// ErrPartialMarkerMissing is returned when the sprite partial lacks the inject markers.
	ErrPartialMarkerMissing = zerr.New("sprite partial is missing inject markers")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileLoadFailed is returned when the .env file exists but cannot be loaded.
	ErrEnvFileLoadFailed = zerr.New("failed to load .env file")

	// ErrInvalidBrowserTarget is returned when a browser target is not of the form <engine><version>.
	ErrInvalidBrowserTarget = zerr.New("invalid browser target")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")

	// ErrServerFailed is returned when the development server cannot listen.
	ErrServerFailed = zerr.New("failed to start development server")
)
