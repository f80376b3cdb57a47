package email

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/gomail.v2"

	"github.com/bookstore-vn/bookstore/internal/domain/order"
	"github.com/bookstore-vn/bookstore/internal/shared/config"
)

type SMTPEmailService struct {
	config config.EmailConfig
	dialer *gomail.Dialer
	policy *bluemonday.Policy
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		config: cfg,
		dialer: dialer,
		policy: bluemonday.StrictPolicy(),
	}
}

// SendPaymentConfirmation tells the customer their VNPay payment went through.
func (s *SMTPEmailService) SendPaymentConfirmation(o *order.Order) error {
	to := o.Customer().Email
	if to == "" {
		return fmt.Errorf("order %d has no customer email", o.ID())
	}

	subject, htmlBody, plainBody := s.renderPaymentConfirmation(o)
	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// renderPaymentConfirmation builds the message. Customer supplied text is
// stripped of markup before it reaches the HTML part.
func (s *SMTPEmailService) renderPaymentConfirmation(o *order.Order) (subject, htmlBody, plainBody string) {
	customer := o.Customer()
	total := o.TotalAmount().Amount().StringFixed(0) + " " + o.TotalAmount().Currency()

	var transactionNo, bankCode string
	if p := o.Payment(); p != nil {
		transactionNo = p.TransactionNo
		bankCode = p.BankCode
	}

	subject = fmt.Sprintf("Order #%d paid", o.ID())

	var htmlItems, plainItems strings.Builder
	for _, item := range o.Items() {
		fmt.Fprintf(&htmlItems, "<li>%s × %d</li>", s.policy.Sanitize(item.Title), item.Quantity)
		fmt.Fprintf(&plainItems, "- %s x %d\n", item.Title, item.Quantity)
	}

	htmlBody = fmt.Sprintf(`
		<html>
		<body>
			<h2>Thank you, %s!</h2>
			<p>We received your payment for order #%d.</p>
			<ul>%s</ul>
			<p>Total: <strong>%s</strong></p>
			<p>VNPay transaction %s via %s.</p>
			<p>%s</p>
		</body>
		</html>
	`, s.policy.Sanitize(customer.Name), o.ID(), htmlItems.String(), total,
		s.policy.Sanitize(transactionNo), s.policy.Sanitize(bankCode), s.policy.Sanitize(s.config.FromName))

	plainBody = fmt.Sprintf(`
Thank you, %s!

We received your payment for order #%d.

%s
Total: %s
VNPay transaction %s via %s.

%s
	`, customer.Name, o.ID(), plainItems.String(), total, transactionNo, bankCode, s.config.FromName)

	return subject, htmlBody, plainBody
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
