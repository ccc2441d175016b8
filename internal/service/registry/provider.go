package registry

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	awsclient "envstart/internal/aws"
)

type awsDiscoveryClients struct {
	clients *awsclient.RegionalClients
}

// NewAwsDiscoveryClients はリージョン別AWSクライアントからDiscoveryClientsを作成する
func NewAwsDiscoveryClients(clients *awsclient.RegionalClients) DiscoveryClients {
	return &awsDiscoveryClients{clients: clients}
}

func (c *awsDiscoveryClients) Cfn(region string) StackResourcesAPI {
	return c.clients.In(region).Cfn()
}

func (c *awsDiscoveryClients) Ec2(region string) ec2.DescribeInstancesAPIClient {
	return c.clients.In(region).Ec2()
}
