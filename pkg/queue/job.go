package queue

import "context"

// Job consumes messages of one type from the queue.
type Job interface {
	// Name returns the unique identifier of the job.
	Name() string

	// Type returns the message type this job handles.
	Type() string

	// Handle processes one queued payload.
	Handle(ctx context.Context, payload interface{}) error
}
