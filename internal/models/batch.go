package model

// TaskBatch is one complete remote fetch: the tasks and the total the
// feed reported for them.
type TaskBatch struct {
	Tasks []Task
	Total int
}
