package ssm

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// standardTierLimit はStandard階層のパラメータに保存できる最大バイト数
const standardTierLimit = 4096

// PutParameterAPI はパラメータ登録に必要なSSM APIのインターフェース
type PutParameterAPI interface {
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// PushConfigOptions は設定ファイルをParameter Storeに登録する際のオプション
type PushConfigOptions struct {
	Client    PutParameterAPI
	FilePath  string
	Name      string // パラメータ名
	Prefix    string // 指定時はNameの前に付ける
	Overwrite bool
	DryRun    bool
}
