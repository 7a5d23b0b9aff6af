// Package clock предоставляет время в часовом поясе салона.
// Все вычисления доступности на "сегодня" используют именно его,
// а не системный UTC.
package clock

import "time"

// Clock возвращает текущее время в фиксированной локации
type Clock struct {
	loc *time.Location
}

// New создает Clock для заданной локации
func New(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

// Now возвращает текущее время в часовом поясе салона
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}
