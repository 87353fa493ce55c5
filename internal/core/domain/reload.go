package domain

// ReloadKind is the kind of message pushed to connected browsers.
type ReloadKind string

const (
	// ReloadFull asks browsers to reload the page.
	ReloadFull ReloadKind = "reload"
	// ReloadInject asks browsers to swap changed stylesheets in place.
	ReloadInject ReloadKind = "inject"
	// ReloadNotify asks browsers to show a transient message.
	ReloadNotify ReloadKind = "notify"
)

// ReloadEvent is a single live-reload broadcast.
type ReloadEvent struct {
	Kind    ReloadKind `json:"kind"`
	Paths   []string   `json:"paths,omitempty"`
	Message string     `json:"message,omitempty"`
}

// GeneratorFailureNotice is shown in the browser when the site generator fails.
const GeneratorFailureNotice = "Hugo build failed :("
