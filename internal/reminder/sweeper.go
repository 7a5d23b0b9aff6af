package reminder

import (
	"context"

	"github.com/velvetnails/VNS-BookingService/internal/domain"
	"github.com/velvetnails/VNS-BookingService/internal/integrations/smsgateway"
)

// Sweeper рассылает напоминания о завтрашних подтвержденных записях
// Запускается по cron-расписанию из main
type Sweeper struct {
	bookingRepo BookingRepository
	notifier    Notifier
	clock       Clock
	logger      Logger
}

// NewSweeper создает новый экземпляр рассыльщика напоминаний
func NewSweeper(bookingRepo BookingRepository, notifier Notifier, clock Clock, logger Logger) *Sweeper {
	return &Sweeper{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

// Run обходит завтрашние записи без отправленного напоминания
// Ошибка отправки одной записи не прерывает обход; флаг reminder_sent
// выставляется только после успешной отправки, неудачные попытки
// повторятся при следующем запуске
func (s *Sweeper) Run(ctx context.Context) {
	tomorrow := s.clock.Now().AddDate(0, 0, 1)

	due, err := s.bookingRepo.GetDueReminders(ctx, tomorrow)
	if err != nil {
		s.logger.Error("ReminderSweep: failed to fetch due reminders: %v", err)
		return
	}

	if len(due) == 0 {
		s.logger.Info("ReminderSweep: nothing due for %s", tomorrow.Format(domain.DateFormat))
		return
	}

	s.logger.Info("ReminderSweep: %d reminders due for %s", len(due), tomorrow.Format(domain.DateFormat))

	sent := 0
	for _, booking := range due {
		if err := s.notifier.Send(ctx, booking.CustomerPhone, smsgateway.BookingReminder(booking)); err != nil {
			s.logger.Error("ReminderSweep: failed to send reminder for booking id=%d: %v", booking.ID, err)
			continue
		}

		if err := s.bookingRepo.MarkReminderSent(ctx, booking.ID); err != nil {
			s.logger.Error("ReminderSweep: failed to mark reminder sent for booking id=%d: %v", booking.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("ReminderSweep: sent %d of %d reminders", sent, len(due))
}
