package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendRequestSubmittedNotification(ctx context.Context, adminEmail, requesterName, itemName string, quantity int32) error {
	subject := "New equipment request"
	body := fmt.Sprintf("%s requested %d unit(s) of %s.\n\nLog in to review and approve or reject the request.", requesterName, quantity, itemName)
	return s.send(adminEmail, subject, body)
}

func (s *emailService) SendRequestApprovedNotification(ctx context.Context, email, itemName string, quantity int32) error {
	subject := "Equipment request approved"
	body := fmt.Sprintf("Your request for %d unit(s) of %s was approved. You can pick up the equipment at the base.", quantity, itemName)
	return s.send(email, subject, body)
}

func (s *emailService) SendRequestRejectedNotification(ctx context.Context, email, itemName string, quantity int32) error {
	subject := "Equipment request rejected"
	body := fmt.Sprintf("Your request for %d unit(s) of %s was rejected. Contact a supervisor for details.", quantity, itemName)
	return s.send(email, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, itemName string, quantity int32, dueDate time.Time) error {
	subject := "Equipment return overdue"
	body := fmt.Sprintf("The %d unit(s) of %s you borrowed were due back on %s. Please return them as soon as possible.", quantity, itemName, dueDate.Format("2006-01-02"))
	return s.send(email, subject, body)
}

func (s *emailService) SendLowStockReport(ctx context.Context, adminEmail string, lines []string) error {
	subject := "Inventory low-stock report"
	body := "The following items have no units available:\n\n" + strings.Join(lines, "\n")
	return s.send(adminEmail, subject, body)
}
