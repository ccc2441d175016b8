package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestRegionalClientsCachesPerRegion(t *testing.T) {
	r := NewRegionalClients(aws.Config{Region: "ap-south-1"})

	south2 := r.In("ap-south-2")
	assert.Equal(t, "ap-south-2", south2.Region())
	assert.Same(t, south2, r.In("ap-south-2"))

	// 空文字は既定リージョン
	assert.Equal(t, "ap-south-1", r.In("").Region())
	assert.Same(t, r.In(""), r.In("ap-south-1"))
}

func TestClientsAreLazilyCreatedOnce(t *testing.T) {
	c := NewClients(aws.Config{Region: "ap-south-2"})

	assert.Same(t, c.Ec2(), c.Ec2())
	assert.Same(t, c.Rds(), c.Rds())
	assert.Same(t, c.AutoScaling(), c.AutoScaling())
}
