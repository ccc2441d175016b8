package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	schedulertypes "github.com/aws/aws-sdk-go-v2/service/scheduler/types"

	"envstart/internal/service/common"
)

// SetState はフィルターにマッチするスケジュールを有効化または無効化し、変更した件数を返す
func SetState(ctx context.Context, rules RulesAPI, schedules SchedulerAPI, filter string, enable bool, w io.Writer) (int, error) {
	if filter == "" {
		return 0, errors.New("フィルターを指定してください")
	}

	fmt.Fprintf(w, common.SearchingFormat+"\n", common.SearchIcon, "'"+filter+"' にマッチするスケジュール")
	found, err := ListSchedules(ctx, rules, schedules, ListOptions{Filter: filter})
	if err != nil {
		return 0, err
	}

	want := StateDisabled
	successFormat, errorFormat := common.DisableSuccessFormat, common.DisableErrorFormat
	if enable {
		want = StateEnabled
		successFormat, errorFormat = common.EnableSuccessFormat, common.EnableErrorFormat
	}

	changed := 0
	var errs []error
	for _, s := range found {
		if s.State == want {
			continue
		}
		label := fmt.Sprintf("%s (%s)", s.Name, s.Type)

		if s.Type == TypeRule {
			err = setRuleState(ctx, rules, s.Name, enable)
		} else {
			err = setSchedulerState(ctx, schedules, s, want)
		}
		if err != nil {
			wrapped := fmt.Errorf(errorFormat, common.ErrorIcon, label, err)
			fmt.Fprintln(w, wrapped)
			errs = append(errs, wrapped)
			continue
		}
		fmt.Fprintf(w, successFormat+"\n", common.SuccessIcon, label)
		changed++
	}

	fmt.Fprintf(w, "%s %d 個のスケジュールを変更しました\n", common.InfoIcon, changed)
	return changed, errors.Join(errs...)
}

func setRuleState(ctx context.Context, client RulesAPI, name string, enable bool) error {
	if enable {
		_, err := client.EnableRule(ctx, &eventbridge.EnableRuleInput{Name: aws.String(name)})
		return err
	}
	_, err := client.DisableRule(ctx, &eventbridge.DisableRuleInput{Name: aws.String(name)})
	return err
}

// setSchedulerState は現在の設定を保ったまま状態だけを更新する
func setSchedulerState(ctx context.Context, client SchedulerAPI, s Schedule, state string) error {
	var group *string
	if s.Group != "" {
		group = aws.String(s.Group)
	}

	current, err := client.GetSchedule(ctx, &scheduler.GetScheduleInput{
		Name:      aws.String(s.Name),
		GroupName: group,
	})
	if err != nil {
		return err
	}

	_, err = client.UpdateSchedule(ctx, &scheduler.UpdateScheduleInput{
		Name:                       current.Name,
		GroupName:                  current.GroupName,
		ScheduleExpression:         current.ScheduleExpression,
		ScheduleExpressionTimezone: current.ScheduleExpressionTimezone,
		StartDate:                  current.StartDate,
		EndDate:                    current.EndDate,
		Description:                current.Description,
		KmsKeyArn:                  current.KmsKeyArn,
		ActionAfterCompletion:      current.ActionAfterCompletion,
		FlexibleTimeWindow:         current.FlexibleTimeWindow,
		Target:                     current.Target,
		State:                      schedulertypes.ScheduleState(state),
	})
	return err
}
