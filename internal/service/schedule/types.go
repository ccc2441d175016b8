package schedule

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
)

// スケジュールの種類
const (
	TypeRule      = "rule"
	TypeScheduler = "scheduler"
)

// スケジュールの状態
const (
	StateEnabled  = "ENABLED"
	StateDisabled = "DISABLED"
)

// Schedule はスケジュール情報を表す構造体
type Schedule struct {
	Name       string // スケジュール名
	Group      string // Schedulerのスケジュールグループ（Ruleは空）
	Type       string // "rule" or "scheduler"
	Expression string // cron式やrate式
	State      string // "ENABLED" or "DISABLED"
	Target     string // ターゲットの簡潔な表現
	Arn        string // リソースARN
}

// ListOptions はスケジュール一覧取得のオプション
type ListOptions struct {
	Type   string // "all", "rule", "scheduler"
	Filter string // 名前のパターン（空なら全件）
}

// RulesAPI はEventBridge Rulesの操作に必要なAPI
type RulesAPI interface {
	ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error)
	ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
	EnableRule(ctx context.Context, params *eventbridge.EnableRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.EnableRuleOutput, error)
	DisableRule(ctx context.Context, params *eventbridge.DisableRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DisableRuleOutput, error)
}

// SchedulerAPI はEventBridge Schedulerの操作に必要なAPI
type SchedulerAPI interface {
	ListSchedules(ctx context.Context, params *scheduler.ListSchedulesInput, optFns ...func(*scheduler.Options)) (*scheduler.ListSchedulesOutput, error)
	GetSchedule(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error)
	UpdateSchedule(ctx context.Context, params *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error)
}
