package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var reportReadyTmpl = template.Must(template.New("report_ready").Parse(`
<p>Hi {{.Name}},</p>
<p>Your sales report is ready. Open the dashboard and look up report
<strong>{{.ReportID}}</strong> to read the full narrative.</p>
<p>— Pipewise</p>
`))

var taskReminderTmpl = template.Must(template.New("task_reminder").Parse(`
<p>Hi {{.Name}},</p>
<p>The task <strong>{{.Title}}</strong> for lead <strong>{{.Company}}</strong>
was due on {{.DueAt}} and is still open.</p>
<p>— Pipewise</p>
`))

func (s *EmailSender) SendReportReady(to, name, reportID string) error {
	var body bytes.Buffer
	if err := reportReadyTmpl.Execute(&body, struct {
		Name     string
		ReportID string
	}{name, reportID}); err != nil {
		return fmt.Errorf("failed to render report email: %w", err)
	}

	return s.send(to, "Your sales report is ready", body.String())
}

func (s *EmailSender) SendTaskReminder(to, name, title, company, dueAt string) error {
	var body bytes.Buffer
	if err := taskReminderTmpl.Execute(&body, struct {
		Name    string
		Title   string
		Company string
		DueAt   string
	}{name, title, company, dueAt}); err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	return s.send(to, fmt.Sprintf("Overdue task: %s", title), body.String())
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	return nil
}
