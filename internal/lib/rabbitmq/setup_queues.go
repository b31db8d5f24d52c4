package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetLifecycleQueues возвращает очереди уведомлений жизненного цикла аккаунта:
// истечение пробного периода, предупреждение о скором удалении данных
// и факт удаления.
func GetLifecycleQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "lifecycle.trial_expired", RoutingKey: "trial_expired"},
		{QueueName: "lifecycle.deletion_warning", RoutingKey: "deletion_warning"},
		{QueueName: "lifecycle.purged", RoutingKey: "purged"},
	}
}
