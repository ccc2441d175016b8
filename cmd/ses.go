package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"envstart/internal/service/ses"
)

var sesVerifyFile string

var SesCmd = &cobra.Command{
	Use:   "ses",
	Short: "SESリソース操作コマンド",
}

var sesVerifyCmd = &cobra.Command{
	Use:   "verify [email1] [email2] ...",
	Short: "メールアドレスをSESで検証する",
	Long: `結果メールの送信元・送信先をSESのIDとして検証します。
引数を省略した場合は設定ファイルの mail.from と mail.to を検証します。

例:
  ` + AppName + ` ses verify                       # 設定の送信元・送信先を検証
  ` + AppName + ` ses verify ops@example.com       # 指定したアドレスを検証
  ` + AppName + ` ses verify -f emails.txt         # ファイル（1行1アドレス）から検証`,
	RunE: func(cmd *cobra.Command, args []string) error {
		emails := args
		if len(emails) == 0 && sesVerifyFile == "" {
			emails = append([]string{appCfg.Mail.From}, appCfg.Mail.To...)
		}

		result, err := ses.VerifyIdentities(cmd.Context(), ses.VerifyOptions{
			Client:   clients.In(appCfg.Mail.SesRegion).Ses(),
			Emails:   emails,
			FilePath: sesVerifyFile,
		})
		if err != nil {
			return err
		}

		ses.DisplayVerifyResult(cmd.OutOrStdout(), result)
		if len(result.FailedEmails) > 0 {
			return fmt.Errorf("一部のメールアドレスの検証に失敗しました")
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(SesCmd)
	SesCmd.AddCommand(sesVerifyCmd)
	sesVerifyCmd.Flags().StringVarP(&sesVerifyFile, "file", "f", "", "メールアドレス一覧ファイル")
}
