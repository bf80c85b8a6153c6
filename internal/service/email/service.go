package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"rentas-backend/internal/config"
)

// DigestData is the consolidated summary of one day's reminder run for an
// organization admin.
type DigestData struct {
	OrgName          string
	Date             string
	PaymentReminders int
	OverdueReminders int
	ExpiryReminders  int
	Failures         int
	Lines            []string
}

type Service interface {
	SendReminderDigest(ctx context.Context, toEmail string, data DigestData) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

var digestTemplate = template.Must(template.New("digest").Parse(`
<h2>Resumen de recordatorios - {{.Date}}</h2>
<p>Hola, este es el resumen de notificaciones enviadas hoy para <strong>{{.OrgName}}</strong>:</p>
<ul>
	<li>Recordatorios de pago: {{.PaymentReminders}}</li>
	<li>Pagos vencidos: {{.OverdueReminders}}</li>
	<li>Contratos por vencer: {{.ExpiryReminders}}</li>
	{{if .Failures}}<li>Envíos fallidos: {{.Failures}}</li>{{end}}
</ul>
{{if .Lines}}
<h3>Detalle</h3>
<ul>
{{range .Lines}}	<li>{{.}}</li>
{{end}}</ul>
{{end}}
`))

func (s *service) SendReminderDigest(ctx context.Context, toEmail string, data DigestData) error {
	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render digest template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Rentas <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: fmt.Sprintf("Resumen de recordatorios - %s", data.Date),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
