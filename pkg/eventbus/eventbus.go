package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultListenerTimeout - сколько времени дается одному обработчику на событие.
const DefaultListenerTimeout = 1 * time.Minute

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - обработчик событий.
type Listener func(ctx context.Context, event Event) error

// Publisher - то, что нужно сервисам от шины.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Bus - in-process шина событий. Обработчики вызываются асинхронно, каждый в своей горутине.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   DefaultListenerTimeout,
		logger:    logger,
	}
}

// WithTimeout меняет таймаут обработчика; нужен в основном тестам.
func (b *Bus) WithTimeout(timeout time.Duration) *Bus {
	b.timeout = timeout
	return b
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish рассылает событие всем подписчикам и сразу возвращает управление.
// Контекст вызывающего не передается обработчикам: HTTP-запрос может завершиться раньше них.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()

			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается завершения всех запущенных обработчиков (используется при остановке сервера).
func (b *Bus) Wait() {
	b.wg.Wait()
}
