package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"talent-desk/internal/model"
)

// EmailConfig 邮件配置。
type EmailConfig struct {
	Host     string   `yaml:"host" json:"host"`
	Port     int      `yaml:"port" json:"port"`
	Username string   `yaml:"username" json:"username"`
	Password string   `yaml:"password" json:"password"`
	From     string   `yaml:"from" json:"from"`
	To       []string `yaml:"to" json:"to"`
	Subject  string   `yaml:"subject" json:"subject"`
}

// Enabled 判断配置是否足以发送邮件。
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.Port != 0 && c.From != "" && len(c.To) > 0
}

// EmailMessage 表示一封邮件。
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// EmailSender 抽象发送接口，便于测试替换。
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMTPClient 封装 SMTP 发送。
type SMTPClient struct {
	addr string
	auth smtp.Auth
}

func NewSMTPClient(cfg EmailConfig) *SMTPClient {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPClient{addr: addr, auth: auth}
}

func (c *SMTPClient) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := buildEmailData(msg)
	return smtp.SendMail(c.addr, c.auth, msg.From, msg.To, []byte(data))
}

// EmailNotifier 把新录入的客户发邮件给客户团队。
type EmailNotifier struct {
	cfg    EmailConfig
	sender EmailSender
}

// NewEmailNotifier 创建 EmailNotifier。
func NewEmailNotifier(cfg EmailConfig, sender EmailSender) *EmailNotifier {
	if sender == nil {
		sender = NewSMTPClient(cfg)
	}
	if cfg.Subject == "" {
		cfg.Subject = "New client intake"
	}
	return &EmailNotifier{cfg: cfg, sender: sender}
}

// NotifyClient 发送一封新客户邮件。
func (n EmailNotifier) NotifyClient(ctx context.Context, client model.ClientIntake) error {
	msg := EmailMessage{
		From:    n.cfg.From,
		To:      n.cfg.To,
		Subject: fmt.Sprintf("%s: %s", n.cfg.Subject, client.CompanyName),
		Body:    buildBody(client),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send intake email: %w", err)
	}
	return nil
}

func buildBody(c model.ClientIntake) string {
	var b strings.Builder
	b.WriteString("New client intake:\n")
	fmt.Fprintf(&b, "Company: %s\n", c.CompanyName)
	if c.ContactName != "" {
		fmt.Fprintf(&b, "Contact: %s <%s>\n", c.ContactName, c.ContactEmail)
	} else {
		fmt.Fprintf(&b, "Contact: %s\n", c.ContactEmail)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	}
	if c.ClientType != "" {
		fmt.Fprintf(&b, "Type: %s\n", c.ClientType)
	}
	if c.Notes != "" {
		b.WriteString("\n")
		b.WriteString(c.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// headerBreaks 把头部值里的换行折成空格，头部必须保持单行。
var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func buildEmailData(msg EmailMessage) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", headerBreaks.Replace(msg.From)))
	b.WriteString(fmt.Sprintf("To: %s\r\n", headerBreaks.Replace(strings.Join(msg.To, ","))))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", headerBreaks.Replace(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)
	return b.String()
}
