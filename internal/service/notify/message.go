package notify

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Message は送信するプレーンテキストメール
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	Date    time.Time
}

// Msg はgo-mailのメッセージに変換する
func (m Message) Msg() (*mail.Msg, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	msg := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8))
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("送信元アドレス %s が不正です: %w", m.From, err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("送信先アドレスが不正です: %w", err)
	}
	msg.Subject(m.Subject)

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}
	msg.SetDateWithValue(date)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	return msg, nil
}

// Bytes はRFC 5322形式のメッセージを組み立てる
func (m Message) Bytes() ([]byte, error) {
	msg, err := m.Msg()
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	if _, err := msg.WriteTo(&b); err != nil {
		return nil, fmt.Errorf("メッセージの組み立てに失敗: %w", err)
	}
	return b.Bytes(), nil
}

// validate は送信前に必須項目を確認する
func (m Message) validate() error {
	if m.From == "" {
		return fmt.Errorf("送信元アドレスが指定されていません")
	}
	if len(m.To) == 0 {
		return fmt.Errorf("送信先アドレスが指定されていません")
	}
	return nil
}
