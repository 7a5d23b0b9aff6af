package create_booking

import (
	"time"

	"github.com/velvetnails/VNS-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerName    string           // Имя клиента
	CustomerPhone   string           // Телефон клиента (для SMS)
	ServiceID       int64            // ID услуги из каталога
	ServiceName     string           // Название услуги (денормализация)
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала слота (например, "14:00")
	DurationMinutes int              // Длительность услуги без учета перерыва
	TotalPrice      float64          // Предварительная цена
	Addons          []string         // Дополнительные услуги
	NailArtNotes    *string          // Пожелания по дизайну (опционально)
	ImageRefs       []string         // Ссылки на референсные изображения
	ClientIP        string           // IP клиента (для лимита заявок, опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	CustomerName    string           // Имя клиента
	CustomerPhone   string           // Телефон клиента
	ServiceID       int64            // ID услуги
	ServiceName     string           // Название услуги
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	TotalPrice      float64          // Предварительная цена
	Addons          []string         // Дополнительные услуги
	Status          string           // Статус записи (pending)
	NailArtNotes    *string          // Пожелания по дизайну
	ImageRefs       []string         // Ссылки на изображения
	OccupiedSlots   []string         // Слоты, удерживаемые записью (включая перерыв)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
