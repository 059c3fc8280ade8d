package domain

// A TaskList is an ordered sequence of things to do.
type TaskList []string

var tasks = TaskList{
	"buy groceries",
	"refill gas",
	"go shopping",
	"pickup friend",
}

// DefaultTasks returns a copy of the process-wide task list.
// Mutating the returned TaskList has no effect on later calls.
func DefaultTasks() TaskList {
	return append(TaskList(nil), tasks...)
}
