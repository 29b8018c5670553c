package logging

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AttemptIDField is the logrus field key the formatter reads the login
// attempt identifier from.
const AttemptIDField = "attempt_id"

// NewAttemptID returns a short identifier that tags every log line belonging
// to one login attempt.
func NewAttemptID() string {
	return uuid.NewString()[:8]
}

// WithAttempt returns a logger entry bound to the given attempt identifier.
func WithAttempt(id string) *log.Entry {
	return log.WithField(AttemptIDField, id)
}
