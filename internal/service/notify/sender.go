package notify

import (
	"context"
	"fmt"

	"envstart/internal/config"
	"envstart/internal/service/secretsmanager"
)

// Sender は結果通知メールの送信方式
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender は設定された送信方式のSenderを作成する
func NewSender(ctx context.Context, cfg config.MailConfig, sesClient RawEmailAPI, secrets secretsmanager.SecretValueAPI) (Sender, error) {
	switch cfg.Transport {
	case config.TransportSes:
		if sesClient == nil {
			return nil, fmt.Errorf("SESクライアントが指定されていません")
		}
		return &SESSender{Client: sesClient}, nil
	case config.TransportSmtp, "":
		username, password, err := ResolveSmtpCredentials(ctx, cfg.Smtp, secrets)
		if err != nil {
			return nil, err
		}
		return &SMTPSender{
			Host:     cfg.Smtp.Host,
			Port:     cfg.Smtp.Port,
			Username: username,
			Password: password,
		}, nil
	default:
		return nil, fmt.Errorf("未対応のメール送信方式です: %s", cfg.Transport)
	}
}

// ResolveSmtpCredentials はSMTP認証情報を返す。SecretIdがあればSecrets Managerの値を優先する
func ResolveSmtpCredentials(ctx context.Context, cfg config.SmtpConfig, secrets secretsmanager.SecretValueAPI) (string, string, error) {
	if cfg.SecretId == "" {
		return cfg.Username, cfg.Password, nil
	}
	if secrets == nil {
		return "", "", fmt.Errorf("Secrets Managerクライアントが指定されていません")
	}

	values, err := secretsmanager.GetSecretValues(ctx, secrets, cfg.SecretId)
	if err != nil {
		return "", "", fmt.Errorf("SMTP認証情報の取得に失敗: %w", err)
	}
	username, err := secretsmanager.GetString(values, "username")
	if err != nil {
		return "", "", err
	}
	password, err := secretsmanager.GetString(values, "password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}
