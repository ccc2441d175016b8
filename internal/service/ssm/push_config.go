package ssm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"envstart/internal/config"
	"envstart/internal/service/common"
)

// PushConfig は設定ファイルを検証したうえでParameter Storeに登録し、登録したパラメータ名を返す
//
// Lambdaは ENVSTART_CONFIG_PARAMETER でこのパラメータを読み込む。
func PushConfig(ctx context.Context, opts PushConfigOptions, w io.Writer) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("パラメータ名を指定してください")
	}
	name := normalizeParameterName(opts.Prefix, opts.Name)

	data, err := os.ReadFile(opts.FilePath)
	if err != nil {
		return "", fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
	}

	// 読み込めない設定は登録しない
	cfg, err := config.LoadFile(opts.FilePath)
	if err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("設定ファイルの検証に失敗しました: %w", err)
	}

	tier := types.ParameterTierStandard
	if len(data) > standardTierLimit {
		tier = types.ParameterTierAdvanced
	}

	if opts.DryRun {
		fmt.Fprintf(w, "%s 以下のパラメータが登録されます:\n", common.InfoIcon)
		fmt.Fprintf(w, "Name: %s\nTier: %s\nSize: %d bytes\n", name, tier, len(data))
		return name, nil
	}

	_, err = opts.Client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:        aws.String(name),
		Value:       aws.String(string(data)),
		Type:        types.ParameterTypeString,
		Tier:        tier,
		Overwrite:   aws.Bool(opts.Overwrite),
		Description: aws.String("envstart configuration"),
	})
	if err != nil {
		return "", fmt.Errorf(common.UpdateErrorFormat, common.ErrorIcon, "パラメータ "+name, err)
	}

	fmt.Fprintf(w, common.UpdateSuccessFormat+"\n", common.SuccessIcon, "パラメータ "+name)
	return name, nil
}
