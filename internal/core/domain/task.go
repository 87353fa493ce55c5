package domain

// TaskName identifies a task or pipeline that can be invoked from the command line.
type TaskName string

// Task and pipeline names.
const (
	TaskHugo         TaskName = "hugo"
	TaskHugoPreview  TaskName = "hugoPreview"
	TaskCSS          TaskName = "css"
	TaskJS           TaskName = "js"
	TaskSVG          TaskName = "svg"
	TaskBuild        TaskName = "build"
	TaskBuildPreview TaskName = "buildPreview"
	TaskServer       TaskName = "server"
)

// String returns the task name.
func (n TaskName) String() string {
	return string(n)
}

// AssetTasks are the tasks that run in parallel ahead of site generation.
func AssetTasks() []TaskName {
	return []TaskName{TaskCSS, TaskJS, TaskSVG}
}
