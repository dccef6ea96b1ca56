package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional receipt emails over SMTP
type Mailer struct {
	host     string
	port     int
	user     string
	password string
}

// New creates a new Mailer. The user doubles as the From address.
func New(host string, port int, user, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
}

// SendReceipt sends the purchase confirmation email. Delivery is best-effort:
// callers log failures and continue, the purchase stands regardless.
func (m *Mailer) SendReceipt(to, nome, reference string, amount int, metodo string) error {
	if m.host == "" || m.user == "" {
		return fmt.Errorf("smtp not configured")
	}

	if nome == "" {
		nome = "Cliente"
	}

	subject := "Confirmação de Compra - Ebook Receitas"
	body := fmt.Sprintf(`
        <h2>Obrigado pela sua compra!</h2>
        <p>Olá %s,</p>
        <p>Sua compra foi processada com sucesso.</p>
        <p><strong>Referência:</strong> %s</p>
        <p><strong>Valor:</strong> %d MT</p>
        <p><strong>Método:</strong> %s</p>
        <p>Em breve você receberá o link para download do seu ebook.</p>
        <br>
        <p>Atenciosamente,<br>Equipe Receitas</p>
    `, nome, reference, amount, strings.ToUpper(metodo))

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=utf-8\r\n"+
		"\r\n"+
		"%s\r\n", to, subject, body))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	return smtp.SendMail(addr, auth, m.user, []string{to}, msg)
}
