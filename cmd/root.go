package cmd

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	awsclient "envstart/internal/aws"
	"envstart/internal/config"
)

// AppName はコマンド名
const AppName = "envstart"

var (
	region     string
	profile    string
	configFile string

	awsCfg  aws.Config
	appCfg  *config.Config
	clients *awsclient.RegionalClients
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "停止中の非本番環境を起動して結果をメールで通知するツール",
	Long: `停止中の非本番環境（EKSノードグループのAuto Scaling Group・EC2インスタンス・
Aurora/RDS DBクラスター・ECSサービス）を2リージョンにまたがって起動し、
結果をメールで通知します。

設定は --config で指定したファイル（YAML/TOML/JSON）、環境変数 ENVSTART_CONFIG_FILE、
またはSSMパラメータ（ENVSTART_CONFIG_PARAMETER）から読み込みます。`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&region, "region", "R", "", "AWSリージョン（未指定時は設定のprimaryリージョン）")
	RootCmd.PersistentFlags().StringVarP(&profile, "profile", "P", "", "AWSプロファイル")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "設定ファイルのパス")

	// コマンド実行前に共通でAWS設定と起動対象の設定を読み込む
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// ヘルプ・バージョン表示の場合はスキップ
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		resolveProfile(cmd)
		return loadConfigs(cmd)
	}
}

// loadConfigs はAWS設定・アプリケーション設定を読み込み、リージョン別クライアントを用意する
func loadConfigs(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var err error
	awsCfg, err = awsclient.LoadAwsConfig(ctx, awsclient.Context{Profile: profile, Region: region})
	if err != nil {
		return fmt.Errorf("❌ AWS設定の読み込みに失敗: %w", err)
	}

	if cmd.Annotations[skipAppConfig] == "" {
		appCfg, err = config.Load(ctx, config.LoadOptions{
			File: configFile,
			Ssm:  awsclient.NewClients(awsCfg).Ssm(),
		})
		if err != nil {
			return fmt.Errorf("❌ 設定の読み込みに失敗: %w", err)
		}
		if region == "" {
			awsCfg.Region = appCfg.Regions.Primary
		}
	}
	clients = awsclient.NewRegionalClients(awsCfg)
	return nil
}
