package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"envstart/internal/service/ssm"
)

// skipAppConfig が付いたコマンドでは起動対象の設定を読み込まない
const skipAppConfig = "skip-app-config"

var (
	pushName      string
	pushPrefix    string
	pushOverwrite bool
	pushDryRun    bool
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "設定の確認・登録コマンド",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "既定値・環境変数を反映した設定を表示",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *appCfg
		if shown.Mail.Smtp.Password != "" {
			shown.Mail.Smtp.Password = "******"
		}
		data, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
	SilenceUsage: true,
}

var configPushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "設定ファイルをParameter Storeに登録",
	Long: `設定ファイルを検証してSSM Parameter Storeに登録します。
Lambdaには環境変数 ENVSTART_CONFIG_PARAMETER で登録したパラメータ名を指定します。

例:
  ` + AppName + ` config push envstart.yaml --name /envstart/uat/config --overwrite
  ` + AppName + ` config push envstart.toml --prefix /envstart/uat --name config --dry-run`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipAppConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := ssm.PushConfig(cmd.Context(), ssm.PushConfigOptions{
			Client:    clients.In("").Ssm(),
			FilePath:  args[0],
			Name:      pushName,
			Prefix:    pushPrefix,
			Overwrite: pushOverwrite,
			DryRun:    pushDryRun,
		}, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !pushDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "🔍 Lambdaの環境変数: ENVSTART_CONFIG_PARAMETER=%s\n", name)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(ConfigCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configPushCmd)

	configPushCmd.Flags().StringVarP(&pushName, "name", "n", "/envstart/config", "パラメータ名")
	configPushCmd.Flags().StringVar(&pushPrefix, "prefix", "", "パラメータ名のプレフィックス")
	configPushCmd.Flags().BoolVar(&pushOverwrite, "overwrite", false, "既存のパラメータを上書きする")
	configPushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "登録内容の表示のみ行う")
}
