package starter

import (
	awsclient "envstart/internal/aws"
)

// awsProvider はRegionalClientsをClientProviderとして扱うためのアダプター
type awsProvider struct {
	clients *awsclient.RegionalClients
}

// NewAwsProvider はリージョン別AWSクライアントからClientProviderを作成する
func NewAwsProvider(clients *awsclient.RegionalClients) ClientProvider {
	return &awsProvider{clients: clients}
}

func (p *awsProvider) AutoScaling(region string) AutoScalingAPI {
	return p.clients.In(region).AutoScaling()
}

func (p *awsProvider) Ec2(region string) Ec2API {
	return p.clients.In(region).Ec2()
}

func (p *awsProvider) Rds(region string) RdsAPI {
	return p.clients.In(region).Rds()
}

func (p *awsProvider) ApplicationAutoScaling(region string) ScalableTargetAPI {
	return p.clients.In(region).ApplicationAutoScaling()
}
