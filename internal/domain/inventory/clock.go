package inventory

import "time"

// Clock fuente de la hora actual; se inyecta para poder fijarla en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock usa time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NowMillis devuelve la hora del reloj en epoch ms (formato de created_at/updated_at).
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
