package domain

// WatchBinding relates a project-relative glob to the task re-run when a matching file changes.
type WatchBinding struct {
	Pattern string
	Task    TaskName
}

// DefaultWatchBindings returns the watches the server pipeline registers.
func DefaultWatchBindings(layout Layout) []WatchBinding {
	return []WatchBinding{
		{Pattern: layout.ScriptWatchGlob, Task: TaskJS},
		{Pattern: layout.StyleWatchGlob, Task: TaskCSS},
		{Pattern: layout.IconGlob, Task: TaskSVG},
		{Pattern: layout.SiteWatchGlob, Task: TaskHugo},
	}
}

// IgnoredWatchGlobs are project-relative paths the generator writes into its own source tree.
// Changes to them never schedule a task.
func IgnoredWatchGlobs(layout Layout) []string {
	return []string{
		layout.SiteDir + "/.hugo_build.lock",
		layout.SiteDir + "/resources/_gen/**",
	}
}
