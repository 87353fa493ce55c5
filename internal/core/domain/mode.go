package domain

// Mode selects which content the site generator includes.
type Mode uint8

const (
	// ModeNone renders published content only.
	ModeNone Mode = iota
	// ModePreview also renders drafts and future-dated content.
	ModePreview
)

// Flags returns the generator flags the mode adds to the base argument list.
func (m Mode) Flags() []string {
	if m == ModePreview {
		return []string{"--buildDrafts", "--buildFuture"}
	}
	return nil
}

// TaskName returns the site task registered for the mode.
func (m Mode) TaskName() TaskName {
	if m == ModePreview {
		return TaskHugoPreview
	}
	return TaskHugo
}
