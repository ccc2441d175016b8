package cmd

import (
	"github.com/spf13/cobra"

	"envstart/internal/service/schedule"
)

var scheduleType string

// ScheduleCmd はscheduleコマンドを表す
var ScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "起動スケジュール管理コマンド",
	Long:  `環境を起動するEventBridge RulesとEventBridge Schedulerのスケジュールを管理するためのコマンド群です。`,
}

var scheduleLsCmd = &cobra.Command{
	Use:   "ls [FILTER]",
	Short: "スケジュール一覧を表示",
	Long: `EventBridge Rules（スケジュールタイプ）とEventBridge Schedulerの一覧を表示します。

例:
  ` + AppName + ` schedule ls                      # 両方のスケジュールを表示
  ` + AppName + ` schedule ls "envstart-*"         # 名前が envstart- で始まるものを表示
  ` + AppName + ` schedule ls --type scheduler     # EventBridge Schedulerのみ表示`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := schedule.ListOptions{Type: scheduleType}
		if len(args) == 1 {
			opts.Filter = args[0]
		}

		c := clients.In("")
		schedules, err := schedule.ListSchedules(cmd.Context(), c.EventBridge(), c.Scheduler(), opts)
		if err != nil {
			return err
		}

		schedule.DisplaySchedules(cmd.OutOrStdout(), schedules)
		return nil
	},
	SilenceUsage: true,
}

var scheduleEnableCmd = &cobra.Command{
	Use:   "enable FILTER",
	Short: "スケジュールを有効化",
	Long: `名前がパターンにマッチするスケジュールを有効化します。

例:
  ` + AppName + ` schedule enable "envstart-*"     # envstart- で始まる全てを有効化
  ` + AppName + ` schedule enable weekday          # weekday を含む全てを有効化`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := clients.In("")
		_, err := schedule.SetState(cmd.Context(), c.EventBridge(), c.Scheduler(), args[0], true, cmd.OutOrStdout())
		return err
	},
	SilenceUsage: true,
}

var scheduleDisableCmd = &cobra.Command{
	Use:   "disable FILTER",
	Short: "スケジュールを無効化",
	Long: `名前がパターンにマッチするスケジュールを無効化します（休暇中など自動起動を止めたい場合）。

例:
  ` + AppName + ` schedule disable "envstart-*"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := clients.In("")
		_, err := schedule.SetState(cmd.Context(), c.EventBridge(), c.Scheduler(), args[0], false, cmd.OutOrStdout())
		return err
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(ScheduleCmd)
	ScheduleCmd.AddCommand(scheduleLsCmd)
	ScheduleCmd.AddCommand(scheduleEnableCmd)
	ScheduleCmd.AddCommand(scheduleDisableCmd)

	scheduleLsCmd.Flags().StringVarP(&scheduleType, "type", "t", "all", "表示するスケジュールの種類 (all|rule|scheduler)")
}
