package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers best-effort notifications for workflow transitions.
// Every method reports whether delivery succeeded; failures are logged and
// never propagate to the caller.
type Notifier interface {
	NotifyRequestApproved(email, name string, requestID int) bool
	NotifyRequestRejected(email, name string, requestID int, reason string) bool
	NotifyProviderAssigned(contact, providerName string, requestID int) bool
}

// NotifyService sends email through SendGrid and SMS through Twilio. Either
// channel succeeding counts as delivered.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) NotifyRequestApproved(email, name string, requestID int) bool {
	subject := fmt.Sprintf("Your service request #%d has been approved", requestID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour service request #%d has been approved. "+
			"The provider will contact you shortly.\n\nDhaka Drive",
		name, requestID,
	)
	return s.deliver(email, name, subject, body)
}

func (s *NotifyService) NotifyRequestRejected(email, name string, requestID int, reason string) bool {
	subject := fmt.Sprintf("Your service request #%d has been rejected", requestID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour service request #%d has been rejected.\nReason: %s\n\n"+
			"You can submit a new request at any time.\n\nDhaka Drive",
		name, requestID, reason,
	)
	return s.deliver(email, name, subject, body)
}

func (s *NotifyService) NotifyProviderAssigned(contact, providerName string, requestID int) bool {
	message := fmt.Sprintf(
		"Dhaka Drive: service request #%d has been approved and assigned to you. "+
			"Check your dashboard for the customer's location.", requestID)

	// Providers register a phone number or an email as their contact.
	if strings.Contains(contact, "@") {
		return s.deliver(contact, providerName, fmt.Sprintf("Service request #%d assigned", requestID), message)
	}
	if err := sendSMS(contact, message); err != nil {
		log.Printf("ALERT: provider SMS for request %d to %s failed: %v", requestID, contact, err)
		return false
	}
	return true
}

func (s *NotifyService) deliver(email, name, subject, body string) bool {
	if err := sendEmailWithSendGrid(email, name, subject, body); err != nil {
		log.Printf("ALERT: email to %s failed: %v", email, err)
		return false
	}
	return true
}

func sendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL not set")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Dhaka Drive"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}
