package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrMailerDisabled = errors.New("email reporting is not configured")

type Attachment struct {
	Name string
	Data []byte
}

// Mailer sends report mails through SES as raw MIME messages
type Mailer struct {
	client sesiface.SESAPI
	from   string
	to     string
}

// NewMailer takes a comma separated recipient list in to
func NewMailer(client sesiface.SESAPI, from string, to string) *Mailer {
	return &Mailer{client: client, from: from, to: to}
}

// Enabled reports whether a sender, a recipient and a client are configured
func (m *Mailer) Enabled() bool {
	return m != nil && m.client != nil && m.from != "" && m.to != ""
}

//SendReport builds the message with gomail and hands it to SES
func (m *Mailer) SendReport(ctx context.Context, subject string, body string, attachments ...Attachment) error {
	contextLogger := log.WithContext(ctx)
	if !m.Enabled() {
		return ErrMailerDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients(m.to)...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	for _, a := range attachments {
		data := a.Data
		msg.Attach(a.Name,
			gomail.SetHeader(map[string][]string{"Content-Type": {xlsxContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	var emailRaw bytes.Buffer
	if _, err := msg.WriteTo(&emailRaw); err != nil {
		contextLogger.WithError(err).Error("Error when writing email data")
		return err
	}

	input := &ses.SendRawEmailInput{
		Source:     aws.String(m.from),
		RawMessage: &ses.RawMessage{Data: emailRaw.Bytes()},
	}
	input.SetDestinations(aws.StringSlice(recipients(m.to)))

	if _, err := m.client.SendRawEmailWithContext(ctx, input); err != nil {
		contextLogger.WithError(err).Error("Error when sending email")
		return err
	}
	contextLogger.Infof("Sent report %q", subject)
	return nil
}

func recipients(to string) []string {
	var out []string
	for _, r := range strings.Split(to, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
