package event

import (
	log "github.com/sirupsen/logrus"

	"pizzeria/pkg/domain/service"
)

// LogDispatcher records domain events in the structured log. There is no
// message broker in this deployment; the event stream exists for audit and
// for wiring a real dispatcher in later.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
