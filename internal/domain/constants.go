package domain

// Форматы даты и времени в API и БД
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Бизнес-ограничения
const (
	MinWeeksBooked          = 1
	MaxWeeksBooked          = 52
	MaxNotesLength          = 1000
	MaxCartLineQuantity     = 99
	LimitedAvailabilityMark = 2 // при remaining <= 2 день помечается как limited
	DefaultCalendarMaxDays  = 62
	DefaultPickupLocation   = "Meadowbrook Equestrian"
	DefaultMaxDocumentBytes = 5 << 20
)

// Пороги уверенности проверки платежа
const (
	VerifiedConfidenceThreshold = 70
	FailedConfidenceThreshold   = 50
	MaxConfidence               = 100
)

// AllowedProofContentTypes допустимые типы файлов подтверждения оплаты
var AllowedProofContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}
