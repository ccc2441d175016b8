package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"envstart/internal/service/common"
	"envstart/internal/service/registry"
	"envstart/internal/service/run"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "起動対象の一覧を表示する",
	Long: `設定ファイルの起動対象に、名前パターンとCloudFormationスタックから検出したリソースを加えて表示します。

例:
  ` + AppName + ` targets -c envstart.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		reg, err := run.DiscoverTargets(appCfg, clients, out)(cmd.Context())
		if err != nil {
			return err
		}
		printTargets(out, reg)

		if err := reg.Validate(); err != nil {
			fmt.Fprintf(out, "%s 起動対象に問題があります\n", common.WarningIcon)
			return err
		}
		return nil
	},
	SilenceUsage: true,
}

// printTargets は起動対象を種類ごとのテーブルで表示する
func printTargets(w io.Writer, reg *registry.Registry) {
	if len(reg.ScalingGroups) > 0 {
		var rows [][]string
		for _, sg := range reg.ScalingGroups {
			rows = append(rows, []string{sg.Name, sg.Region, itoa(sg.MinSize), itoa(sg.MaxSize), itoa(sg.DesiredCapacity)})
		}
		common.PrintTable(w, "Auto Scaling Group",
			[]common.TableColumn{{Header: "Name"}, {Header: "Region"}, {Header: "Min"}, {Header: "Max"}, {Header: "Desired"}}, rows)
	}

	if len(reg.Instances) > 0 {
		var rows [][]string
		for _, group := range reg.Instances {
			rows = append(rows, []string{group.Region, strings.Join(group.InstanceIds, ", ")})
		}
		common.PrintTable(w, "EC2インスタンス", []common.TableColumn{{Header: "Region"}, {Header: "Instance IDs"}}, rows)
	}

	if len(reg.Clusters) > 0 {
		var rows [][]string
		for _, cl := range reg.Clusters {
			rows = append(rows, []string{cl.Id, cl.Region})
		}
		common.PrintTable(w, "DBクラスター", []common.TableColumn{{Header: "Cluster"}, {Header: "Region"}}, rows)
	}

	if len(reg.Services) > 0 {
		var rows [][]string
		for _, svc := range reg.Services {
			rows = append(rows, []string{svc.Cluster, svc.Service, svc.Region, itoa(svc.MinCapacity), itoa(svc.MaxCapacity)})
		}
		common.PrintTable(w, "ECSサービス",
			[]common.TableColumn{{Header: "Cluster"}, {Header: "Service"}, {Header: "Region"}, {Header: "Min"}, {Header: "Max"}}, rows)
	}

	fmt.Fprintf(w, "\n合計: %d件の起動処理\n", reg.Count())
}

func itoa(n int32) string {
	return strconv.Itoa(int(n))
}

func init() {
	RootCmd.AddCommand(targetsCmd)
}
