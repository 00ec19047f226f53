package resilience

import (
	"context"

	"go.uber.org/zap"

	"conduit/pkg/logger"
)

// Policy объединяет Circuit Breaker и повторные попытки для одной зависимости.
type Policy struct {
	name    string
	breaker *CircuitBreaker
	retry   *Retry
}

// NewPolicy создает политику отказоустойчивости.
func NewPolicy(name string, breaker CircuitBreakerConfig, retry RetryConfig) *Policy {
	return &Policy{
		name:    name,
		breaker: NewCircuitBreaker(name, breaker),
		retry:   NewRetry(name, retry),
	}
}

// Execute выполняет операцию: повторы идут внутри одного запроса к Circuit Breaker.
func (p *Policy) Execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", p.name),
		zap.String("operation", operation))

	return p.breaker.Execute(ctx, func() error {
		return p.retry.Execute(ctx, func() error {
			return fn(ctx)
		})
	})
}

// State возвращает состояние Circuit Breaker.
func (p *Policy) State() CircuitState {
	return p.breaker.GetState()
}

// Do выполняет операцию с результатом под политикой p.
func Do[T any](ctx context.Context, p *Policy, operation string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := p.Execute(ctx, operation, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
