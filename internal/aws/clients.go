package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Clients は1リージョン分のAWS設定と各サービスクライアントを管理
type Clients struct {
	cfg aws.Config

	// 遅延初期化されるクライアント群
	autoScaling    *autoscaling.Client
	appAutoScaling *applicationautoscaling.Client
	cfn            *cloudformation.Client
	ec2            *ec2.Client
	rds            *rds.Client
	ses            *ses.Client
	secretsManager *secretsmanager.Client
	ssm            *ssm.Client
	scheduler      *scheduler.Client
	eventBridge    *eventbridge.Client
}

// NewClients はAWS設定からクライアント管理構造体を作成
func NewClients(cfg aws.Config) *Clients {
	return &Clients{cfg: cfg}
}

// Region はクライアントが向いているリージョンを返す
func (c *Clients) Region() string {
	return c.cfg.Region
}

// AutoScaling は遅延初期化でEC2 Auto Scalingクライアントを取得
func (c *Clients) AutoScaling() *autoscaling.Client {
	if c.autoScaling == nil {
		c.autoScaling = autoscaling.NewFromConfig(c.cfg)
	}
	return c.autoScaling
}

// ApplicationAutoScaling は遅延初期化でApplication Auto Scalingクライアントを取得
func (c *Clients) ApplicationAutoScaling() *applicationautoscaling.Client {
	if c.appAutoScaling == nil {
		c.appAutoScaling = applicationautoscaling.NewFromConfig(c.cfg)
	}
	return c.appAutoScaling
}

// Cfn は遅延初期化でCloudFormationクライアントを取得
func (c *Clients) Cfn() *cloudformation.Client {
	if c.cfn == nil {
		c.cfn = cloudformation.NewFromConfig(c.cfg)
	}
	return c.cfn
}

// Ec2 は遅延初期化でEC2クライアントを取得
func (c *Clients) Ec2() *ec2.Client {
	if c.ec2 == nil {
		c.ec2 = ec2.NewFromConfig(c.cfg)
	}
	return c.ec2
}

// Rds は遅延初期化でRDSクライアントを取得
func (c *Clients) Rds() *rds.Client {
	if c.rds == nil {
		c.rds = rds.NewFromConfig(c.cfg)
	}
	return c.rds
}

// Ses は遅延初期化でSESクライアントを取得
func (c *Clients) Ses() *ses.Client {
	if c.ses == nil {
		c.ses = ses.NewFromConfig(c.cfg)
	}
	return c.ses
}

// SecretsManager は遅延初期化でSecretsManagerクライアントを取得
func (c *Clients) SecretsManager() *secretsmanager.Client {
	if c.secretsManager == nil {
		c.secretsManager = secretsmanager.NewFromConfig(c.cfg)
	}
	return c.secretsManager
}

// Ssm は遅延初期化でSSMクライアントを取得
func (c *Clients) Ssm() *ssm.Client {
	if c.ssm == nil {
		c.ssm = ssm.NewFromConfig(c.cfg)
	}
	return c.ssm
}

// Scheduler は遅延初期化でEventBridge Schedulerクライアントを取得
func (c *Clients) Scheduler() *scheduler.Client {
	if c.scheduler == nil {
		c.scheduler = scheduler.NewFromConfig(c.cfg)
	}
	return c.scheduler
}

// EventBridge は遅延初期化でEventBridgeクライアントを取得
func (c *Clients) EventBridge() *eventbridge.Client {
	if c.eventBridge == nil {
		c.eventBridge = eventbridge.NewFromConfig(c.cfg)
	}
	return c.eventBridge
}

// RegionalClients はリージョンごとのClientsをキャッシュする
type RegionalClients struct {
	base     aws.Config
	byRegion map[string]*Clients
}

// NewRegionalClients は共通のAWS設定からリージョン別クライアント管理構造体を作成
func NewRegionalClients(cfg aws.Config) *RegionalClients {
	return &RegionalClients{
		base:     cfg,
		byRegion: make(map[string]*Clients),
	}
}

// In は指定リージョン向けのClientsを返す（空文字の場合は既定リージョン）
func (r *RegionalClients) In(region string) *Clients {
	if region == "" {
		region = r.base.Region
	}
	if c, ok := r.byRegion[region]; ok {
		return c
	}
	cfg := r.base.Copy()
	cfg.Region = region
	c := NewClients(cfg)
	r.byRegion[region] = c
	return c
}
