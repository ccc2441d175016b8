package ses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// VerifyAPI はメールアドレス検証に必要なSES APIのインターフェース
type VerifyAPI interface {
	VerifyEmailIdentity(ctx context.Context, params *ses.VerifyEmailIdentityInput, optFns ...func(*ses.Options)) (*ses.VerifyEmailIdentityOutput, error)
}

// VerifyOptions はメールアドレス検証のオプション
type VerifyOptions struct {
	Client VerifyAPI
	// Emails は通知設定の送信元・送信先など、直接指定するアドレス
	Emails []string
	// FilePath が指定されていれば1行1アドレスのファイルからも読み込む
	FilePath string
}

// VerifyResult は検証結果を表す構造体
type VerifyResult struct {
	TotalEmails         int
	SuccessfulEmails    int
	FailedEmails        []string
	DuplicateRemoved    int
	VerificationDetails []EmailVerificationDetail
}

// EmailVerificationDetail は個別のメール検証詳細
type EmailVerificationDetail struct {
	Email   string
	Success bool
	Error   error
}
