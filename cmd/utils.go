package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// resolveProfile は -P 未指定時に環境変数 AWS_PROFILE を使う（どちらもなければSDKの既定の認証情報を使う）
func resolveProfile(cmd *cobra.Command) {
	if profile != "" {
		return
	}
	envProfile := os.Getenv("AWS_PROFILE")
	if envProfile == "" {
		return
	}
	profile = envProfile
	cmd.Println("🔍 環境変数 AWS_PROFILE の値 '" + profile + "' を使用します")
}
