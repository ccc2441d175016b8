package starter

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"envstart/internal/config"
)

// AutoScalingAPI はAuto Scaling Groupのキャパシティ更新に必要な操作
type AutoScalingAPI interface {
	UpdateAutoScalingGroup(ctx context.Context, params *autoscaling.UpdateAutoScalingGroupInput, optFns ...func(*autoscaling.Options)) (*autoscaling.UpdateAutoScalingGroupOutput, error)
}

// Ec2API はEC2インスタンス起動に必要な操作
type Ec2API interface {
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
}

// RdsAPI はDBクラスター起動と状態確認に必要な操作
type RdsAPI interface {
	StartDBCluster(ctx context.Context, params *rds.StartDBClusterInput, optFns ...func(*rds.Options)) (*rds.StartDBClusterOutput, error)
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
}

// ScalableTargetAPI はECSサービスのスケーラブルターゲット登録に必要な操作
type ScalableTargetAPI interface {
	RegisterScalableTarget(ctx context.Context, params *applicationautoscaling.RegisterScalableTargetInput, optFns ...func(*applicationautoscaling.Options)) (*applicationautoscaling.RegisterScalableTargetOutput, error)
}

// ClientProvider はリージョンごとのクライアントを返す
type ClientProvider interface {
	AutoScaling(region string) AutoScalingAPI
	Ec2(region string) Ec2API
	Rds(region string) RdsAPI
	ApplicationAutoScaling(region string) ScalableTargetAPI
}

// Options はStarterの動作設定
type Options struct {
	Policy   config.FailurePolicy
	Out      io.Writer          // 進捗表示先（nilの場合は表示しない）
	Progress func(label string) // 各起動処理の完了ごとに呼ばれる
}
