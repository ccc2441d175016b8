package cmd

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"envstart/internal/config"
	"envstart/internal/service/common"
	"envstart/internal/service/registry"
	"envstart/internal/service/run"
)

var (
	startPolicy  string
	startDryRun  bool
	startNoEmail bool
	startVerbose bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "環境のリソースを起動して結果をメールで通知する",
	Long: `設定された起動対象（Auto Scaling Group → EC2インスタンス → DBクラスター → ECSサービス）を
順番に起動し、結果をメールで通知します。

例:
  ` + AppName + ` start -c envstart.yaml                 # 起動して結果をメール送信
  ` + AppName + ` start -c envstart.yaml --dry-run       # 起動対象の確認のみ
  ` + AppName + ` start --policy isolate --no-email      # 失敗しても続行・メール送信なし`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if startPolicy != "" {
			appCfg.FailurePolicy = config.FailurePolicy(startPolicy)
			if err := appCfg.Validate(); err != nil {
				return err
			}
		}

		fmt.Fprintf(out, common.SearchingFormat+"\n", common.SearchIcon, "起動対象")
		discover := run.DiscoverTargets(appCfg, clients, out)

		if startDryRun {
			reg, err := discover(ctx)
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			printTargets(out, reg)
			fmt.Fprintf(out, "%s ドライランのため起動は行いません（%d件）\n", common.InfoIcon, reg.Count())
			return nil
		}

		// 件数は起動対象の準備後に確定するため、それまでは不定表示
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("起動中"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		// 進捗はプログレスバーで表示するため、詳細表示は --verbose 指定時のみ
		stepOut := io.Discard
		if startVerbose {
			stepOut = out
		}

		log := logrus.New()
		log.SetOutput(io.Discard)
		if startVerbose {
			log.SetOutput(cmd.ErrOrStderr())
		}

		// 検出の失敗はRunnerが結果メールに反映する
		targets := run.Observe(discover, func(reg *registry.Registry) {
			printTargets(out, reg)
			bar.ChangeMax(reg.Count())
		})

		runner, err := run.NewFromConfig(ctx, appCfg, clients, run.Options{
			Targets:  targets,
			Out:      stepOut,
			Progress: func(label string) { _ = bar.Add(1) },
			NoEmail:  startNoEmail,
			Log:      log,
		})
		if err != nil {
			return err
		}

		result, err := runner.Run(ctx)
		_ = bar.Finish()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n%s 起動結果:\n%s", common.InfoIcon, result.Body.Details)
		if startNoEmail {
			fmt.Fprintf(out, "%s メール送信をスキップしました\n", common.MailIcon)
		} else {
			fmt.Fprintf(out, common.SendSuccessFormat+"\n", common.MailIcon, "結果メール")
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startPolicy, "policy", "", "失敗時の扱い (abort|isolate)")
	startCmd.Flags().BoolVar(&startDryRun, "dry-run", false, "起動対象の表示のみ行う")
	startCmd.Flags().BoolVar(&startNoEmail, "no-email", false, "結果メールを送信しない")
	startCmd.Flags().BoolVarP(&startVerbose, "verbose", "v", false, "各リソースの処理状況を表示する")
}
