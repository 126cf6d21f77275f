package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// eventCapturer is the part of the sentry hub the hook needs
type eventCapturer interface {
	CaptureException(exception error) *sentry.EventID
}

// SentryHook forwards log entries of the given levels to Sentry.
type SentryHook struct {
	hub    eventCapturer
	levels []logrus.Level
}

func NewSentryHook(hub eventCapturer, levels []logrus.Level) *SentryHook {
	return &SentryHook{
		hub:    hub,
		levels: levels,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok && err != nil {
		h.hub.CaptureException(err)
		return nil
	}
	h.hub.CaptureException(errors.New(entry.Message))
	return nil
}
