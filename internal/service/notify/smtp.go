package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPSender はSTARTTLS必須・PLAIN認証でメールを送信する
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string

	// TLSConfig が nil の場合はHostをServerNameとして検証する
	TLSConfig *tls.Config
}

// Send はメールを1通送信する
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := msg.Msg()
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.Host, s.options()...)
	if err != nil {
		return fmt.Errorf("SMTPクライアントの作成に失敗: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("SMTPサーバー %s:%d でのメール送信に失敗: %w", s.Host, s.Port, err)
	}
	return nil
}

func (s *SMTPSender) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.TLSConfig != nil {
		opts = append(opts, mail.WithTLSConfig(s.TLSConfig))
	}
	// 認証情報がない場合は認証なしで送信する
	if s.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password),
		)
	}
	return opts
}
