package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Policy define uma política de retry reutilizável: número máximo de tentativas,
// backoff exponencial limitado e quais erros são elegíveis para nova tentativa
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Retryable   func(error) bool
}

// DefaultPolicy retorna a política usada pelas integrações HTTP do pipeline
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		Retryable:   retryable,
	}
}

// Do executa fn respeitando a política. Erros não elegíveis interrompem
// imediatamente; o último erro é retornado quando as tentativas se esgotam
func (p Policy) Do(ctx context.Context, operation string, fn func() error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.delayFor(attempt)
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"attempt":   attempt,
			"delay":     delay.String(),
		}).Warn("Tentativa falhou, aguardando antes de tentar novamente")

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "retry de %s cancelado", operation)
		case <-time.After(delay):
		}
	}

	return errors.Wrapf(lastErr, "tentativas esgotadas para %s após %d execuções", operation, p.MaxAttempts)
}

// delayFor calcula o backoff exponencial para a tentativa informada
func (p Policy) delayFor(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}

	return delay
}
