package registry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"envstart/internal/config"
	"envstart/internal/service/common"
)

// CloudFormationリソースタイプ
const (
	resourceTypeInstance     = "AWS::EC2::Instance"
	resourceTypeDBCluster    = "AWS::RDS::DBCluster"
	resourceTypeScalingGroup = "AWS::AutoScaling::AutoScalingGroup"
	resourceTypeEcsService   = "AWS::ECS::Service"
)

// StackResourcesAPI はスタックリソース取得に必要なCloudFormationの操作
type StackResourcesAPI interface {
	DescribeStackResources(ctx context.Context, params *cloudformation.DescribeStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourcesOutput, error)
}

// DiscoveryClients はリージョンごとの検出用クライアントを返す
type DiscoveryClients interface {
	Cfn(region string) StackResourcesAPI
	Ec2(region string) ec2.DescribeInstancesAPIClient
}

// Discover は名前パターンとCloudFormationスタックから起動対象を検出して追加する
func Discover(ctx context.Context, r *Registry, cfg *config.Config, clients DiscoveryClients, out io.Writer) error {
	for _, group := range cfg.Instances {
		if len(group.NamePatterns) == 0 {
			continue
		}
		ids, err := FindInstancesByName(ctx, clients.Ec2(group.Region), group.NamePatterns)
		if err != nil {
			return fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "EC2インスタンス("+group.Region+")", err)
		}
		for _, id := range ids {
			fmt.Fprintf(out, "%s 名前パターンに一致したEC2インスタンス: %s (%s)\n", common.SearchIcon, id, group.Region)
		}
		r.AddInstances(group.Region, ids...)
	}

	for _, stack := range cfg.Stacks {
		if err := discoverFromStack(ctx, r, cfg, clients.Cfn(stack.Region), stack, out); err != nil {
			return err
		}
	}

	return nil
}

// FindInstancesByName はNameタグがいずれかのパターンに一致する、終了済みでないインスタンスIDを返す
func FindInstancesByName(ctx context.Context, client ec2.DescribeInstancesAPIClient, patterns []string) ([]string, error) {
	var ids []string

	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				if instance.State != nil {
					switch instance.State.Name {
					case ec2types.InstanceStateNameTerminated, ec2types.InstanceStateNameShuttingDown:
						continue
					}
				}
				if common.MatchAny(instanceName(instance.Tags), patterns) {
					ids = append(ids, aws.ToString(instance.InstanceId))
				}
			}
		}
	}

	return ids, nil
}

// instanceName はNameタグの値を返す
func instanceName(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

// discoverFromStack はスタック内の起動・停止可能なリソースを追加する
func discoverFromStack(ctx context.Context, r *Registry, cfg *config.Config, client StackResourcesAPI, stack config.StackConfig, out io.Writer) error {
	fmt.Fprintf(out, common.SearchingFormat+"\n", common.SearchIcon, "スタック '"+stack.Name+"' のリソース")

	resp, err := client.DescribeStackResources(ctx, &cloudformation.DescribeStackResourcesInput{
		StackName: aws.String(stack.Name),
	})
	if err != nil {
		return fmt.Errorf("CloudFormationスタック '%s' のリソース取得に失敗: %w", stack.Name, err)
	}
	if len(resp.StackResources) == 0 {
		return fmt.Errorf("スタック '%s' にリソースが見つかりませんでした", stack.Name)
	}

	for _, resource := range resp.StackResources {
		physicalId := aws.ToString(resource.PhysicalResourceId)
		if physicalId == "" {
			continue
		}

		switch aws.ToString(resource.ResourceType) {
		case resourceTypeInstance:
			r.AddInstances(stack.Region, physicalId)
			fmt.Fprintf(out, "%s 検出されたEC2インスタンス: %s\n", common.SearchIcon, physicalId)
		case resourceTypeDBCluster:
			r.AddCluster(ClusterTarget{Id: physicalId, Region: stack.Region})
			fmt.Fprintf(out, "%s 検出されたDBクラスター: %s\n", common.SearchIcon, physicalId)
		case resourceTypeScalingGroup:
			r.AddScalingGroup(ScalingGroupTarget{
				Name:            physicalId,
				Region:          stack.Region,
				MinSize:         cfg.Capacity.MinSize,
				MaxSize:         cfg.Capacity.MaxSize,
				DesiredCapacity: cfg.Capacity.DesiredCapacity,
			})
			fmt.Fprintf(out, "%s 検出されたAuto Scaling Group: %s\n", common.SearchIcon, physicalId)
		case resourceTypeEcsService:
			cluster, service, ok := parseServiceArn(physicalId)
			if !ok {
				fmt.Fprintf(out, "%s 警告: ECSサービスARNの形式が不正です: %s\n", common.WarningIcon, physicalId)
				continue
			}
			r.AddService(ServiceTarget{
				Region:      stack.Region,
				Cluster:     cluster,
				Service:     service,
				MinCapacity: config.DefaultServiceMinCapacity,
				MaxCapacity: config.DefaultServiceMaxCapacity,
			})
			fmt.Fprintf(out, "%s 検出されたECSサービス: %s/%s\n", common.SearchIcon, cluster, service)
		}
	}

	return nil
}

// parseServiceArn はECSサービスARNからクラスター名とサービス名を取り出す
// (形式: arn:aws:ecs:REGION:ACCOUNT:service/CLUSTER/SERVICE_NAME)
func parseServiceArn(arn string) (string, string, bool) {
	parts := strings.Split(arn, "/")
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[len(parts)-2], parts[len(parts)-1], true
}
