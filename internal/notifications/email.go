package notifications

import (
	"fmt"
	"net/smtp"
	"strings"

	log "github.com/sirupsen/logrus"
)

const importDoneSubject = "Workout Data Processing Completed"

// EmailNotifier sends the import completion summary over plain SMTP with
// STARTTLS (the gmail submission setup, host:587).
type EmailNotifier struct {
	host      string
	port      int
	sender    string
	password  string
	recipient string
}

func NewEmailNotifier(host string, port int, sender, password, recipient string) *EmailNotifier {
	return &EmailNotifier{
		host:      host,
		port:      port,
		sender:    sender,
		password:  password,
		recipient: recipient,
	}
}

func (n *EmailNotifier) SendImportSummary(summary string) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.sender, n.password, n.host)

	msg := buildMessage(n.sender, n.recipient, importDoneSubject, summary)

	log.Debugf("sending import summary email to %s via %s", n.recipient, addr)

	if err := smtp.SendMail(addr, auth, n.sender, []string{n.recipient}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")
	return []byte(sb.String())
}
