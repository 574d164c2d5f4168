package services

import "spendwise/internal/logger"

// logNotifier is the default Notifier. Mail delivery is handled outside
// this repository; this implementation records the notification so the
// reset flow stays observable in development.
type logNotifier struct{}

// NewLogNotifier creates a Notifier that writes notifications to the log.
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) SendPasswordReset(email, token string) {
	logger.Get().Infow("password reset issued",
		"email", email,
		"token", token,
	)
}
