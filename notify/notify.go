// Package notify renders and dispatches the reminder mails of the platform.
// Actual delivery is an external collaborator hidden behind Sender.
package notify

import (
	"bytes"
	"context"
	"html/template"

	"github.com/pkg/errors"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/model"
)

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogSender is the default delivery: it only logs. Wire a real sender in
// deployments that have one.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	log.Infof("notify: to=%s subject=%q (%d bytes)", to, subject, len(htmlBody))
	return nil
}

var deactivationTmpl = template.Must(template.New("deactivation").Parse(`
<h2>Notificación de Actualización de Formulario</h2>
<h2>¡Saludos, {{.FirstName}}!</h2>
<p>Esta es una notificación de que la actualización del formulario está próxima. ¡No te la pierdas!</p>
<p>Atentamente,</p>
<p>El equipo de SCI</p>
`))

// DeactivationReminder mails a user whose account was just deactivated.
func DeactivationReminder(ctx context.Context, sender Sender, user model.User) error {
	var body bytes.Buffer
	err := deactivationTmpl.Execute(&body, struct{ FirstName string }{user.Name})
	if err != nil {
		return errors.Wrap(err, "render deactivation reminder")
	}
	err = sender.Send(ctx, user.Email, "Notificación de Actualización de Formulario", body.String())
	return errors.Wrap(err, "send deactivation reminder")
}
