package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

// RawEmailAPI はSESでの送信に必要なAPIのインターフェース
type RawEmailAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender はAmazon SESのSendRawEmailでメールを送信する
type SESSender struct {
	Client RawEmailAPI
}

// Send はメールを1通送信する
func (s *SESSender) Send(ctx context.Context, msg Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	_, err = s.Client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(msg.From),
		Destinations: msg.To,
		RawMessage:   &types.RawMessage{Data: data},
	})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "MessageRejected" {
		return fmt.Errorf("SESがメールを拒否しました（送信元 %s が未検証の可能性があります）: %w", msg.From, err)
	}
	return fmt.Errorf("SESでのメール送信に失敗: %w", err)
}
