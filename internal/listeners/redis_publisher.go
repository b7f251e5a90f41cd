package listeners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
)

// redisPublisher - часть *redis.Client, которая нужна слушателю.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// envelope - формат сообщения в канале Redis.
type envelope struct {
	Event   string         `json:"event"`
	Payload eventbus.Event `json:"payload"`
}

// RedisEventListener пересылает доменные события в канал Redis pub/sub,
// чтобы открытые канбан-доски могли обновиться. Это уведомление, а не кэш.
type RedisEventListener struct {
	client  redisPublisher
	channel string
	logger  *zap.Logger
}

func NewRedisEventListener(client redisPublisher, channel string, logger *zap.Logger) *RedisEventListener {
	return &RedisEventListener{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (l *RedisEventListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{
		events.MaintenanceRequestCreated,
		events.MaintenanceRequestStageChanged,
		events.EquipmentScrapped,
	} {
		bus.Subscribe(name, l.Handle)
	}
	l.logger.Info("RedisEventListener подписан на события обслуживания", zap.String("channel", l.channel))
}

func (l *RedisEventListener) Handle(ctx context.Context, event eventbus.Event) error {
	body, err := json.Marshal(envelope{Event: event.Name(), Payload: event})
	if err != nil {
		return fmt.Errorf("не удалось сериализовать событие %s: %w", event.Name(), err)
	}

	receivers, err := l.client.Publish(ctx, l.channel, body).Result()
	if err != nil {
		return fmt.Errorf("не удалось опубликовать событие %s в Redis: %w", event.Name(), err)
	}

	l.logger.Debug("Событие опубликовано в Redis",
		zap.String("event", event.Name()),
		zap.Int64("receivers", receivers),
	)
	return nil
}
