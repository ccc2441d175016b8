package starter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	aastypes "github.com/aws/aws-sdk-go-v2/service/applicationautoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"envstart/internal/config"
	"envstart/internal/service/common"
	"envstart/internal/service/registry"
	"envstart/internal/service/report"
)

// Starter は停止中の環境のリソースを順番に起動する
type Starter struct {
	clients  ClientProvider
	policy   config.FailurePolicy
	out      io.Writer
	progress func(label string)
}

// step は1件分の起動処理
type step struct {
	label string // 進捗表示用のリソース名
	run   func(ctx context.Context) (string, error)
	// failureLine はリソース単位で失敗を記録する場合の結果行
	failureLine func(err error) string
	// isolated が true の処理は失敗ポリシーに関わらず失敗しても続行する
	isolated bool
}

// New はStarterを作成する
func New(clients ClientProvider, opts Options) *Starter {
	policy := opts.Policy
	if policy == "" {
		policy = config.FailurePolicyAbort
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Starter{
		clients:  clients,
		policy:   policy,
		out:      out,
		progress: opts.Progress,
	}
}

// Start はASG → EC2 → DBクラスター → ECSサービスの順に起動し、結果をReportに追記する
//
// abort ポリシーでは最初のASG・EC2・ECSの失敗で残りを中断し、そのエラーを返す。
// isolate ポリシーでは全リソースを処理し、失敗をまとめたエラーを返す。
func (s *Starter) Start(ctx context.Context, reg *registry.Registry, rep *report.Report) error {
	var errs []error

	for _, st := range s.plan(reg) {
		fmt.Fprintf(s.out, common.StartingFormat+"\n", common.StartIcon, st.label)
		line, err := st.run(ctx)
		s.done(st.label)

		if err == nil {
			fmt.Fprintf(s.out, common.StartSuccessFormat+"\n", common.SuccessIcon, st.label)
			rep.Add(line)
			continue
		}

		wrapped := fmt.Errorf(common.StartErrorFormat, common.ErrorIcon, st.label, err)
		fmt.Fprintln(s.out, wrapped)

		if st.isolated || s.policy == config.FailurePolicyIsolate {
			rep.Add(st.failureLine(err))
			if s.policy == config.FailurePolicyIsolate {
				errs = append(errs, wrapped)
			}
			continue
		}

		rep.Fail(err)
		return wrapped
	}

	if len(errs) > 0 {
		rep.MarkFailed()
		return errors.Join(errs...)
	}
	return nil
}

func (s *Starter) done(label string) {
	if s.progress != nil {
		s.progress(label)
	}
}

// plan は起動対象一覧から実行順の処理を組み立てる
func (s *Starter) plan(reg *registry.Registry) []step {
	var steps []step

	for _, sg := range reg.ScalingGroups {
		sg := sg
		steps = append(steps, step{
			label: "Auto Scaling Group " + sg.Name,
			run: func(ctx context.Context) (string, error) {
				return s.updateScalingGroup(ctx, sg)
			},
			failureLine: func(err error) string {
				return fmt.Sprintf("Error updating Auto Scaling Group %s: %v", sg.Name, err)
			},
		})
	}

	for _, group := range reg.Instances {
		group := group
		if len(group.InstanceIds) == 0 {
			continue
		}
		steps = append(steps, step{
			label: "EC2インスタンス (" + group.Region + ")",
			run: func(ctx context.Context) (string, error) {
				return s.startInstances(ctx, group)
			},
			failureLine: func(err error) string {
				return fmt.Sprintf("Error starting EC2 instances in %s: %v", group.Region, err)
			},
		})
	}

	for _, cl := range reg.Clusters {
		cl := cl
		steps = append(steps, step{
			label: "DBクラスター " + cl.Id,
			run: func(ctx context.Context) (string, error) {
				return startCluster(ctx, s.clients.Rds(cl.Region), cl)
			},
			failureLine: func(err error) string {
				return fmt.Sprintf("Error starting RDS cluster %s: %v", cl.Id, err)
			},
			isolated: true,
		})
	}

	for _, svc := range reg.Services {
		svc := svc
		steps = append(steps, step{
			label: "ECSサービス " + svc.Cluster + "/" + svc.Service,
			run: func(ctx context.Context) (string, error) {
				return s.registerService(ctx, svc)
			},
			failureLine: func(err error) string {
				return fmt.Sprintf("Error updating ECS service %s/%s: %v", svc.Cluster, svc.Service, err)
			},
		})
	}

	return steps
}

// updateScalingGroup はAuto Scaling Groupのキャパシティを設定する
func (s *Starter) updateScalingGroup(ctx context.Context, sg registry.ScalingGroupTarget) (string, error) {
	_, err := s.clients.AutoScaling(sg.Region).UpdateAutoScalingGroup(ctx, &autoscaling.UpdateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(sg.Name),
		MinSize:              aws.Int32(sg.MinSize),
		MaxSize:              aws.Int32(sg.MaxSize),
		DesiredCapacity:      aws.Int32(sg.DesiredCapacity),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated Auto Scaling Group %s to MinSize=%d, MaxSize=%d, DesiredCapacity=%d",
		sg.Name, sg.MinSize, sg.MaxSize, sg.DesiredCapacity), nil
}

// startInstances はリージョン内のEC2インスタンスをまとめて起動する
func (s *Starter) startInstances(ctx context.Context, group registry.InstanceTargets) (string, error) {
	out, err := s.clients.Ec2(group.Region).StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: group.InstanceIds,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Started EC2 instances in %s:\n%s", group.Region, report.FormatStartingInstances(out.StartingInstances)), nil
}

// registerService はECSサービスのスケーラブルターゲットを登録してタスク数の下限を引き上げる
func (s *Starter) registerService(ctx context.Context, svc registry.ServiceTarget) (string, error) {
	resourceId := fmt.Sprintf("service/%s/%s", svc.Cluster, svc.Service)

	_, err := s.clients.ApplicationAutoScaling(svc.Region).RegisterScalableTarget(ctx, &applicationautoscaling.RegisterScalableTargetInput{
		ServiceNamespace:  aastypes.ServiceNamespaceEcs,
		ScalableDimension: aastypes.ScalableDimensionECSServiceDesiredCount,
		ResourceId:        aws.String(resourceId),
		MinCapacity:       aws.Int32(svc.MinCapacity),
		MaxCapacity:       aws.Int32(svc.MaxCapacity),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated ECS service %s/%s to MinCapacity=%d, MaxCapacity=%d",
		svc.Cluster, svc.Service, svc.MinCapacity, svc.MaxCapacity), nil
}
