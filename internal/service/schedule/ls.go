package schedule

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	eventbridgetypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"

	"envstart/internal/service/common"
)

// ListSchedules はスケジュール一覧を取得する
func ListSchedules(ctx context.Context, rules RulesAPI, schedules SchedulerAPI, opts ListOptions) ([]Schedule, error) {
	var result []Schedule

	if opts.Type == "" || opts.Type == "all" || opts.Type == TypeRule {
		found, err := listRules(ctx, rules, opts.Filter)
		if err != nil {
			return nil, fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "EventBridge Rules", err)
		}
		result = append(result, found...)
	}

	if opts.Type == "" || opts.Type == "all" || opts.Type == TypeScheduler {
		found, err := listSchedulers(ctx, schedules, opts.Filter)
		if err != nil {
			return nil, fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "EventBridge Scheduler", err)
		}
		result = append(result, found...)
	}

	return result, nil
}

func matchFilter(name, filter string) bool {
	return filter == "" || common.MatchPattern(name, filter)
}

// listRules はスケジュール式を持つEventBridge Rulesを取得
func listRules(ctx context.Context, client RulesAPI, filter string) ([]Schedule, error) {
	var schedules []Schedule

	input := &eventbridge.ListRulesInput{}
	for {
		out, err := client.ListRules(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, rule := range out.Rules {
			name := aws.ToString(rule.Name)
			// スケジュール式を持つルールのみ対象
			if aws.ToString(rule.ScheduleExpression) == "" || !matchFilter(name, filter) {
				continue
			}

			targets, err := client.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{Rule: rule.Name})
			if err != nil {
				return nil, fmt.Errorf("ルール %s のターゲット取得エラー: %w", name, err)
			}

			schedules = append(schedules, Schedule{
				Name:       name,
				Type:       TypeRule,
				Expression: aws.ToString(rule.ScheduleExpression),
				State:      string(rule.State),
				Target:     formatRuleTargets(targets.Targets),
				Arn:        aws.ToString(rule.Arn),
			})
		}

		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	return schedules, nil
}

// listSchedulers はEventBridge Schedulerのスケジュールを取得
func listSchedulers(ctx context.Context, client SchedulerAPI, filter string) ([]Schedule, error) {
	var schedules []Schedule

	paginator := scheduler.NewListSchedulesPaginator(client, &scheduler.ListSchedulesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, summary := range page.Schedules {
			name := aws.ToString(summary.Name)
			if !matchFilter(name, filter) {
				continue
			}

			detail, err := client.GetSchedule(ctx, &scheduler.GetScheduleInput{
				Name:      summary.Name,
				GroupName: summary.GroupName,
			})
			if err != nil {
				return nil, fmt.Errorf("スケジュール %s の詳細取得エラー: %w", name, err)
			}

			target := "なし"
			if detail.Target != nil {
				target = formatArn(aws.ToString(detail.Target.Arn))
			}
			schedules = append(schedules, Schedule{
				Name:       name,
				Group:      aws.ToString(summary.GroupName),
				Type:       TypeScheduler,
				Expression: aws.ToString(detail.ScheduleExpression),
				State:      string(detail.State),
				Target:     target,
				Arn:        aws.ToString(summary.Arn),
			})
		}
	}

	return schedules, nil
}

func formatRuleTargets(targets []eventbridgetypes.Target) string {
	if len(targets) == 0 {
		return "なし"
	}
	var names []string
	for _, target := range targets {
		names = append(names, formatArn(aws.ToString(target.Arn)))
	}
	return strings.Join(names, ", ")
}

// formatArn はターゲットARNを「サービス:リソース名」の形に縮める
func formatArn(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 {
		return arn
	}
	service, resource := parts[2], parts[5]

	switch service {
	case "lambda":
		return "Lambda:" + strings.TrimPrefix(resource, "function:")
	case "states":
		return "StepFunc:" + strings.TrimPrefix(resource, "stateMachine:")
	case "sns":
		return "SNS:" + resource
	case "sqs":
		return "SQS:" + resource
	}
	return service + ":" + resource
}

// DisplaySchedules はスケジュール一覧を表示する
func DisplaySchedules(w io.Writer, schedules []Schedule) {
	if len(schedules) == 0 {
		fmt.Fprintln(w, "スケジュールが見つかりませんでした")
		return
	}

	columns := []common.TableColumn{
		{Header: "Name"},
		{Header: "Schedule"},
		{Header: "State"},
		{Header: "Target"},
	}

	var ruleData, schedulerData [][]string
	for _, s := range schedules {
		state := s.State
		switch s.State {
		case StateEnabled:
			state = "🟢 " + s.State
		case StateDisabled:
			state = "🔴 " + s.State
		}

		row := []string{s.Name, s.Expression, state, s.Target}
		if s.Type == TypeRule {
			ruleData = append(ruleData, row)
		} else {
			schedulerData = append(schedulerData, row)
		}
	}

	if len(ruleData) > 0 {
		common.PrintTable(w, "EventBridge Rules (Schedule)", columns, ruleData)
	}
	if len(schedulerData) > 0 {
		common.PrintTable(w, "EventBridge Scheduler", columns, schedulerData)
	}

	fmt.Fprintf(w, "\n合計: %d個のスケジュール (Rules: %d, Scheduler: %d)\n", len(schedules), len(ruleData), len(schedulerData))
}
