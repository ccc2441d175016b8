package starter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envstart/internal/config"
	"envstart/internal/service/registry"
	"envstart/internal/service/report"
)

const alreadyAvailableError = "DbCluster uat-cluster-1 is in available state but expected it to be one of stopped,inaccessible-encryption-credentials-recoverable."

// fakeClients は呼び出しを記録するClientProviderの実装
type fakeClients struct {
	calls     []string
	asgErr    map[string]error
	ec2Err    map[string]error
	rdsErr    map[string]error
	rdsStatus map[string]string
	svcErr    map[string]error
}

type regional struct {
	f      *fakeClients
	region string
}

func (f *fakeClients) AutoScaling(region string) AutoScalingAPI { return regional{f, region} }
func (f *fakeClients) Ec2(region string) Ec2API                 { return regional{f, region} }
func (f *fakeClients) Rds(region string) RdsAPI                 { return regional{f, region} }
func (f *fakeClients) ApplicationAutoScaling(region string) ScalableTargetAPI {
	return regional{f, region}
}

func (r regional) UpdateAutoScalingGroup(ctx context.Context, in *autoscaling.UpdateAutoScalingGroupInput, _ ...func(*autoscaling.Options)) (*autoscaling.UpdateAutoScalingGroupOutput, error) {
	name := aws.ToString(in.AutoScalingGroupName)
	r.f.calls = append(r.f.calls, "asg:"+r.region+":"+name)
	if err := r.f.asgErr[name]; err != nil {
		return nil, err
	}
	return &autoscaling.UpdateAutoScalingGroupOutput{}, nil
}

func (r regional) StartInstances(ctx context.Context, in *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	r.f.calls = append(r.f.calls, "ec2:"+r.region+":"+strings.Join(in.InstanceIds, ","))
	if err := r.f.ec2Err[r.region]; err != nil {
		return nil, err
	}
	out := &ec2.StartInstancesOutput{}
	for _, id := range in.InstanceIds {
		out.StartingInstances = append(out.StartingInstances, ec2types.InstanceStateChange{
			InstanceId:    aws.String(id),
			PreviousState: &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
			CurrentState:  &ec2types.InstanceState{Name: ec2types.InstanceStateNamePending},
		})
	}
	return out, nil
}

func (r regional) StartDBCluster(ctx context.Context, in *rds.StartDBClusterInput, _ ...func(*rds.Options)) (*rds.StartDBClusterOutput, error) {
	id := aws.ToString(in.DBClusterIdentifier)
	r.f.calls = append(r.f.calls, "rds:"+r.region+":"+id)
	if err := r.f.rdsErr[id]; err != nil {
		return nil, err
	}
	return &rds.StartDBClusterOutput{}, nil
}

func (r regional) DescribeDBClusters(ctx context.Context, in *rds.DescribeDBClustersInput, _ ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error) {
	id := aws.ToString(in.DBClusterIdentifier)
	status, ok := r.f.rdsStatus[id]
	if !ok {
		return nil, errors.New("DBClusterNotFoundFault")
	}
	return &rds.DescribeDBClustersOutput{DBClusters: []rdstypes.DBCluster{{DBClusterIdentifier: aws.String(id), Status: aws.String(status)}}}, nil
}

func (r regional) RegisterScalableTarget(ctx context.Context, in *applicationautoscaling.RegisterScalableTargetInput, _ ...func(*applicationautoscaling.Options)) (*applicationautoscaling.RegisterScalableTargetOutput, error) {
	id := aws.ToString(in.ResourceId)
	r.f.calls = append(r.f.calls, "ecs:"+r.region+":"+id)
	if err := r.f.svcErr[id]; err != nil {
		return nil, err
	}
	return &applicationautoscaling.RegisterScalableTargetOutput{}, nil
}

func newFake() *fakeClients {
	return &fakeClients{
		asgErr:    map[string]error{},
		ec2Err:    map[string]error{},
		rdsErr:    map[string]error{},
		rdsStatus: map[string]string{},
		svcErr:    map[string]error{},
	}
}

func sampleRegistry() *registry.Registry {
	return &registry.Registry{
		Regions: []string{"ap-south-1", "ap-south-2"},
		ScalingGroups: []registry.ScalingGroupTarget{
			{Name: "EKS-ASG-1", Region: "ap-south-2", MinSize: 1, MaxSize: 3, DesiredCapacity: 1},
			{Name: "EKS-ASG-2", Region: "ap-south-2", MinSize: 1, MaxSize: 3, DesiredCapacity: 1},
		},
		Instances: []registry.InstanceTargets{
			{Region: "ap-south-1", InstanceIds: []string{"i-0a"}},
			{Region: "ap-south-2", InstanceIds: []string{"i-0b", "i-0c"}},
		},
		Clusters: []registry.ClusterTarget{
			{Id: "uat-cluster-1", Region: "ap-south-2"},
			{Id: "uat-cluster-2", Region: "ap-south-2"},
		},
	}
}

func newReport() *report.Report {
	return report.New(config.DefaultSuccessSubject, config.DefaultFailureSubject)
}

func TestStartAllSucceed(t *testing.T) {
	fake := newFake()
	rep := newReport()

	err := New(fake, Options{}).Start(context.Background(), sampleRegistry(), rep)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"asg:ap-south-2:EKS-ASG-1",
		"asg:ap-south-2:EKS-ASG-2",
		"ec2:ap-south-1:i-0a",
		"ec2:ap-south-2:i-0b,i-0c",
		"rds:ap-south-2:uat-cluster-1",
		"rds:ap-south-2:uat-cluster-2",
	}, fake.calls)

	assert.Equal(t, []string{
		"Updated Auto Scaling Group EKS-ASG-1 to MinSize=1, MaxSize=3, DesiredCapacity=1",
		"Updated Auto Scaling Group EKS-ASG-2 to MinSize=1, MaxSize=3, DesiredCapacity=1",
		"Started EC2 instances in ap-south-1:\nInstance i-0a changed from stopped to pending.",
		"Started EC2 instances in ap-south-2:\nInstance i-0b changed from stopped to pending.\nInstance i-0c changed from stopped to pending.",
		"RDS cluster uat-cluster-1 started successfully.",
		"RDS cluster uat-cluster-2 started successfully.",
	}, rep.Lines())
	assert.Equal(t, "infra service started status", rep.Subject())
}

func TestStartFirstScalingGroupFailureAborts(t *testing.T) {
	fake := newFake()
	fake.asgErr["EKS-ASG-1"] = errors.New("ValidationError: AutoScalingGroup name not found")
	rep := newReport()

	err := New(fake, Options{Policy: config.FailurePolicyAbort}).Start(context.Background(), sampleRegistry(), rep)
	require.Error(t, err)

	assert.Equal(t, []string{"asg:ap-south-2:EKS-ASG-1"}, fake.calls)
	assert.Equal(t, []string{"An error occurred: ValidationError: AutoScalingGroup name not found"}, rep.Lines())
	assert.Equal(t, "GB UAT infra start failed", rep.Subject())
}

func TestStartSecondScalingGroupFailureAborts(t *testing.T) {
	fake := newFake()
	fake.asgErr["EKS-ASG-2"] = errors.New("throttled")
	rep := newReport()

	err := New(fake, Options{}).Start(context.Background(), sampleRegistry(), rep)
	require.Error(t, err)

	lines := rep.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Updated Auto Scaling Group EKS-ASG-1"))
	assert.Equal(t, "An error occurred: throttled", lines[1])
	assert.NotContains(t, rep.String(), "Instance ")
	assert.NotContains(t, rep.String(), "RDS cluster")
	assert.Equal(t, "GB UAT infra start failed", rep.Subject())
}

func TestStartInstanceFailureSkipsClusters(t *testing.T) {
	fake := newFake()
	fake.ec2Err["ap-south-2"] = errors.New("InvalidInstanceID.NotFound")
	rep := newReport()

	err := New(fake, Options{}).Start(context.Background(), sampleRegistry(), rep)
	require.Error(t, err)

	for _, call := range fake.calls {
		assert.False(t, strings.HasPrefix(call, "rds:"), call)
	}
	assert.Contains(t, rep.String(), "An error occurred: InvalidInstanceID.NotFound\n")
}

func TestStartClusterOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
		want   string
	}{
		{
			name: "started",
			want: "RDS cluster uat-cluster-1 started successfully.",
		},
		{
			name: "already available by message",
			err:  errors.New("InvalidDBClusterStateFault: " + alreadyAvailableError),
			want: "RDS cluster uat-cluster-1 is already in the 'available' state.",
		},
		{
			name:   "already available by state",
			err:    &rdstypes.InvalidDBClusterStateFault{Message: aws.String("DbCluster uat-cluster-1 is not in stopped state.")},
			status: "available",
			want:   "RDS cluster uat-cluster-1 is already in the 'available' state.",
		},
		{
			name:   "invalid state while stopping",
			err:    &rdstypes.InvalidDBClusterStateFault{Message: aws.String("DbCluster uat-cluster-1 is in stopping state.")},
			status: "stopping",
			want:   "Error starting RDS cluster uat-cluster-1: InvalidDBClusterStateFault: DbCluster uat-cluster-1 is in stopping state.",
		},
		{
			name: "other error",
			err:  errors.New("DBClusterNotFoundFault: DBCluster uat-cluster-1 not found."),
			want: "Error starting RDS cluster uat-cluster-1: DBClusterNotFoundFault: DBCluster uat-cluster-1 not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			if tt.err != nil {
				fake.rdsErr["uat-cluster-1"] = tt.err
			}
			if tt.status != "" {
				fake.rdsStatus["uat-cluster-1"] = tt.status
			}
			reg := &registry.Registry{Clusters: []registry.ClusterTarget{{Id: "uat-cluster-1", Region: "ap-south-2"}}}
			rep := newReport()

			require.NoError(t, New(fake, Options{}).Start(context.Background(), reg, rep))
			assert.Equal(t, []string{tt.want}, rep.Lines())
			assert.False(t, rep.Failed())
		})
	}
}

func TestStartClusterFailureDoesNotStopNextCluster(t *testing.T) {
	fake := newFake()
	fake.rdsErr["uat-cluster-1"] = errors.New("AccessDenied")
	rep := newReport()

	require.NoError(t, New(fake, Options{}).Start(context.Background(), sampleRegistry(), rep))

	lines := rep.Lines()
	// クラスターごとに結果行がちょうど1行ずつある
	for _, id := range []string{"uat-cluster-1", "uat-cluster-2"} {
		count := 0
		for _, line := range lines {
			if strings.Contains(line, "RDS cluster "+id) {
				count++
			}
		}
		assert.Equal(t, 1, count, id)
	}
	assert.Contains(t, lines, "Error starting RDS cluster uat-cluster-1: AccessDenied")
	assert.Contains(t, lines, "RDS cluster uat-cluster-2 started successfully.")
	assert.Equal(t, "infra service started status", rep.Subject())
}

func TestStartIsolatePolicyContinues(t *testing.T) {
	fake := newFake()
	fake.asgErr["EKS-ASG-1"] = errors.New("ValidationError")
	fake.rdsErr["uat-cluster-2"] = errors.New("AccessDenied")
	rep := newReport()

	err := New(fake, Options{Policy: config.FailurePolicyIsolate}).Start(context.Background(), sampleRegistry(), rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ValidationError")
	assert.Contains(t, err.Error(), "AccessDenied")

	assert.Len(t, fake.calls, 6)
	lines := rep.Lines()
	assert.Equal(t, "Error updating Auto Scaling Group EKS-ASG-1: ValidationError", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Updated Auto Scaling Group EKS-ASG-2"))
	assert.Equal(t, "Error starting RDS cluster uat-cluster-2: AccessDenied", lines[5])
	assert.NotContains(t, rep.String(), "An error occurred")
	assert.Equal(t, "GB UAT infra start failed", rep.Subject())
}

func TestStartIsolatePolicyInstanceFailure(t *testing.T) {
	fake := newFake()
	fake.ec2Err["ap-south-1"] = errors.New("UnauthorizedOperation")
	rep := newReport()

	err := New(fake, Options{Policy: config.FailurePolicyIsolate}).Start(context.Background(), sampleRegistry(), rep)
	require.Error(t, err)
	assert.Contains(t, rep.Lines(), "Error starting EC2 instances in ap-south-1: UnauthorizedOperation")
	assert.Contains(t, rep.String(), "Instance i-0b changed from stopped to pending.")
}

func TestStartServices(t *testing.T) {
	fake := newFake()
	reg := &registry.Registry{Services: []registry.ServiceTarget{
		{Region: "ap-south-2", Cluster: "uat", Service: "api", MinCapacity: 1, MaxCapacity: 2},
		{Region: "ap-south-2", Cluster: "uat", Service: "worker", MinCapacity: 1, MaxCapacity: 2},
	}}
	fake.svcErr["service/uat/api"] = errors.New("ValidationException")
	rep := newReport()

	err := New(fake, Options{}).Start(context.Background(), reg, rep)
	require.Error(t, err)
	assert.Equal(t, []string{"ecs:ap-south-2:service/uat/api"}, fake.calls)

	fake = newFake()
	rep = newReport()
	require.NoError(t, New(fake, Options{}).Start(context.Background(), reg, rep))
	assert.Equal(t, "Updated ECS service uat/api to MinCapacity=1, MaxCapacity=2", rep.Lines()[0])
}

func TestStartReportsProgress(t *testing.T) {
	reg := sampleRegistry()
	var labels []string

	opts := Options{Progress: func(label string) { labels = append(labels, label) }}
	require.NoError(t, New(newFake(), opts).Start(context.Background(), reg, newReport()))

	assert.Len(t, labels, reg.Count())
	assert.Equal(t, "Auto Scaling Group EKS-ASG-1", labels[0])
}

func TestStartSkipsEmptyInstanceBlock(t *testing.T) {
	fake := newFake()
	reg := &registry.Registry{Instances: []registry.InstanceTargets{{Region: "ap-south-1"}}}
	rep := newReport()

	require.NoError(t, New(fake, Options{}).Start(context.Background(), reg, rep))
	assert.Empty(t, fake.calls)
	assert.Empty(t, rep.Lines())
}
