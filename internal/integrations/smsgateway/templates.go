package smsgateway

import (
	"fmt"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
)

// SMS-шаблоны уведомлений. Тексты видны клиентам салона.

// BookingReceived текст после создания заявки
func BookingReceived(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s! We received your appointment request for %s at %s. We'll text you once it's confirmed.",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(),
	)
}

// BookingConfirmed текст после подтверждения оператором
func BookingConfirmed(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s! Your appointment on %s at %s is confirmed. Total: $%.2f. See you soon!",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(), b.TotalPrice,
	)
}

// BookingRejected текст после отклонения заявки
func BookingRejected(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s, unfortunately we can't take your appointment request for %s at %s. Please book another time.",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(),
	)
}

// BookingCancelled текст после отмены
func BookingCancelled(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s, your appointment on %s at %s has been cancelled.",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(),
	)
}

// BookingRescheduled текст после переноса; перенос требует повторного
// подтверждения
func BookingRescheduled(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s! Your appointment was moved to %s at %s and is pending re-confirmation. We'll text you shortly.",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(),
	)
}

// BookingReminder текст напоминания накануне визита
func BookingReminder(b *domain.Booking) string {
	return fmt.Sprintf(
		"Hi %s! Reminder: your appointment is tomorrow, %s at %s. Reply to this message if you need to reschedule.",
		b.CustomerName, b.Date.Format("Monday, Jan 2"), b.StartTime.Display(),
	)
}
