package service

import "time"

// Backoff экспоненциальная задержка с потолком: min(Cap, Base * 2^max(attempts, 1))
type Backoff struct {
	Base time.Duration
	Cap  time.Duration
}

// Delay возвращает задержку перед следующей попыткой
func (b Backoff) Delay(attempts int) time.Duration {
	delay := b.Base
	for i := 0; i < max(attempts, 1); i++ {
		if delay >= b.Cap/2 {
			return b.Cap
		}
		delay *= 2
	}

	return min(delay, b.Cap)
}
