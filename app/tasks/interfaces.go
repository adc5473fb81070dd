package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background scraping and by tasks that
// fan out follow-up work.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
