package mailer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Mailer уведомления оператору и покупателям через MailerSend.
// Выключенный Mailer (NewDisabled) ничего не отправляет
type Mailer struct {
	sender   Sender
	cfg      Config
	log      Logger
	recorder Recorder
	now      func() time.Time
}

// New создает Mailer поверх клиента MailerSend
func New(apiKey string, cfg Config, log Logger, recorder Recorder) *Mailer {
	return NewWithSender(mailersend.NewMailersend(apiKey).Email, cfg, log, recorder)
}

// NewWithSender создает Mailer с произвольным отправителем
func NewWithSender(sender Sender, cfg Config, log Logger, recorder Recorder) *Mailer {
	return &Mailer{sender: sender, cfg: cfg, log: log, recorder: recorder, now: time.Now}
}

// NewDisabled Mailer без отправки
func NewDisabled(log Logger) *Mailer {
	return &Mailer{log: log, now: time.Now}
}

// Enabled true, если письма реально отправляются
func (m *Mailer) Enabled() bool {
	return m != nil && m.sender != nil
}

// OrderCreated письмо оператору о новом заказе
func (m *Mailer) OrderCreated(ctx context.Context, order *domain.OrderDetails, customer *domain.User) error {
	params := newParams()
	params["to_email"] = m.cfg.OperatorEmail
	params["email_type"] = KindOrderCreated
	params["subject_line"] = fmt.Sprintf("Order #%d", order.ID)
	fillCustomer(params, customer)
	params["order_items"] = orderItemsText(order.Items)
	params["total_amount"] = money(order.TotalAmount)
	params["pickup_location"] = order.PickupLocation
	if order.PickupLocation == "" {
		params["pickup_location"] = domain.DefaultPickupLocation
	}
	params["order_date"] = formatTime(order.CreatedAt)
	params["payment_proof_url"] = m.proofURL(order.PaymentProofRef)
	params["ai_verification_summary"] = order.Verification.Label()
	params["ai_verification_details"] = verificationDetails(order.Verification)
	params["order_id"] = strconv.FormatInt(order.ID, 10)

	return m.send(ctx, KindOrderCreated, m.cfg.OperatorEmail, params["subject_line"].(string), params)
}

// ReservationCreated письмо оператору о новой записи на урок
func (m *Mailer) ReservationCreated(ctx context.Context, details *domain.ReservationDetails, customer *domain.User) error {
	params := newParams()
	params["to_email"] = m.cfg.OperatorEmail
	params["email_type"] = KindReservationCreated
	params["subject_line"] = fmt.Sprintf("Booking #%d", details.ID)
	fillCustomer(params, customer)
	params["lesson_type"] = details.LessonType.Name
	params["lesson_date"] = domain.DateKey(details.BookingDate)
	params["lesson_time"] = fmt.Sprintf("%s - %s", details.StartTime, details.EndTime)
	params["weeks_booked"] = strconv.Itoa(details.WeeksBooked)
	params["total_amount"] = money(details.TotalAmount)
	params["payment_proof_url"] = m.proofURL(details.PaymentProofRef)
	params["ai_verification_summary"] = details.Verification.Label()
	params["ai_verification_details"] = verificationDetails(details.Verification)
	params["booking_id"] = strconv.FormatInt(details.ID, 10)

	return m.send(ctx, KindReservationCreated, m.cfg.OperatorEmail, params["subject_line"].(string), params)
}

// ContactMessage сообщение из формы обратной связи оператору
func (m *Mailer) ContactMessage(ctx context.Context, form ContactForm) error {
	params := newParams()
	params["to_email"] = m.cfg.OperatorEmail
	params["email_type"] = KindContactMessage
	params["subject_line"] = form.Subject
	params["customer_name"] = form.Name
	params["customer_email"] = form.Email
	params["customer_phone"] = form.Phone
	if strings.TrimSpace(form.Phone) == "" {
		params["customer_phone"] = "Not provided"
	}
	params["contact_message"] = form.Message
	params["subject"] = form.Subject
	params["date"] = formatTime(m.now())

	subject := form.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "Contact form message from " + form.Name
	}

	return m.send(ctx, KindContactMessage, m.cfg.OperatorEmail, subject, params)
}

// OrderStatusChanged подтверждение покупателю о смене статуса заказа
func (m *Mailer) OrderStatusChanged(ctx context.Context, order *domain.Order, customer *domain.User) error {
	subject := fmt.Sprintf("Your Order #%d - %s", order.ID, order.Status)

	params := newParams()
	params["to_email"] = customer.Email
	params["email_type"] = KindOrderStatusChanged
	params["subject_line"] = subject
	fillCustomer(params, customer)
	params["order_id"] = strconv.FormatInt(order.ID, 10)
	params["order_date"] = formatTime(order.CreatedAt)
	params["total_amount"] = money(order.TotalAmount)

	return m.send(ctx, KindOrderStatusChanged, customer.Email, subject, params)
}

func (m *Mailer) send(ctx context.Context, kind, to, subject string, params map[string]interface{}) error {
	if !m.Enabled() {
		m.log.Info("Mailer disabled, skipping %q to %s", kind, to)
		return nil
	}

	message := new(mailersend.Message)
	message.SetFrom(mailersend.From{Name: m.cfg.FromName, Email: m.cfg.FromEmail})
	message.SetRecipients([]mailersend.Recipient{{Email: to}})
	message.SetSubject(subject)
	message.SetTemplateID(m.cfg.TemplateID)
	message.SetPersonalization([]mailersend.Personalization{{Email: to, Data: params}})

	res, err := m.sender.Send(ctx, message)
	if m.recorder != nil {
		m.recorder.RecordNotification(kind, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSendFailed, kind, err)
	}

	messageID := ""
	if res != nil && res.Response != nil {
		messageID = res.Header.Get("X-Message-Id")
	}
	m.log.Info("Email %q sent to %s, message_id=%s", kind, to, messageID)

	return nil
}

func (m *Mailer) proofURL(ref *string) string {
	if ref == nil || *ref == "" {
		return "No payment proof uploaded"
	}
	if m.cfg.ProofsBaseURL == "" {
		return *ref
	}
	return strings.TrimRight(m.cfg.ProofsBaseURL, "/") + "/" + *ref
}

func fillCustomer(params map[string]interface{}, customer *domain.User) {
	if customer == nil {
		return
	}
	params["customer_name"] = customer.FullName()
	params["customer_email"] = customer.Email
	params["customer_phone"] = customer.ContactNumber
}
