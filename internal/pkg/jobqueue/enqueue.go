package jobqueue

import "github.com/rentcourt/ftpr/internal/pkg/mail"

// EnqueueEmail queues msg for delivery through q
func EnqueueEmail(q Enqueuer, msg mail.Message) error {
	_, err := q.EnqueueJob(JobTypeSendEmail, EmailPayload(msg).ToMap())
	return err
}
