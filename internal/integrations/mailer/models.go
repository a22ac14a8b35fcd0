package mailer

// Типы писем (email_type в шаблоне)
const (
	KindOrderCreated       = "New Order Received"
	KindReservationCreated = "New Lesson Booking"
	KindContactMessage     = "Contact Form Submission"
	KindOrderStatusChanged = "Order Confirmation"
)

// ContactForm сообщение из формы обратной связи
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Config параметры отправителя
type Config struct {
	FromEmail     string
	FromName      string
	OperatorEmail string
	TemplateID    string
	ProofsBaseURL string
}

// templateKeys все переменные универсального шаблона.
// Шаблон один на все типы писем, неиспользуемые поля передаются пустыми
var templateKeys = []string{
	"to_email",
	"email_type",
	"subject_line",
	"customer_name",
	"customer_email",
	"customer_phone",
	"order_items",
	"total_amount",
	"pickup_location",
	"order_date",
	"payment_proof_url",
	"ai_verification_summary",
	"ai_verification_details",
	"order_id",
	"lesson_type",
	"lesson_date",
	"lesson_time",
	"weeks_booked",
	"booking_id",
	"contact_message",
	"subject",
	"date",
}

func newParams() map[string]interface{} {
	params := make(map[string]interface{}, len(templateKeys))
	for _, k := range templateKeys {
		params[k] = ""
	}
	return params
}
