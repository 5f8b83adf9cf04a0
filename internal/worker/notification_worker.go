package worker

import (
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartKafkaForwarder mirrors every domain event to Kafka.
func StartKafkaForwarder(dispatcher events.Dispatcher, forwarder *events.KafkaForwarder) {
	if dispatcher == nil || forwarder == nil {
		return
	}
	events.SubscribeAll(dispatcher, forwarder.Handle)
}
