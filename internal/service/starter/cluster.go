package starter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"

	"envstart/internal/service/registry"
)

const clusterStatusAvailable = "available"

// alreadyAvailableMessage はクラスターが既に起動済みの場合にStartDBClusterが返すエラーメッセージの一部
const alreadyAvailableMessage = "available state but expected it to be one of stopped,inaccessible-encryption-credentials-recoverable"

// startCluster はDBクラスターを起動する。既に available の場合は成功として扱う
func startCluster(ctx context.Context, client RdsAPI, target registry.ClusterTarget) (string, error) {
	_, err := client.StartDBCluster(ctx, &rds.StartDBClusterInput{
		DBClusterIdentifier: aws.String(target.Id),
	})
	if err == nil {
		return fmt.Sprintf("RDS cluster %s started successfully.", target.Id), nil
	}

	if isAlreadyAvailable(ctx, client, target.Id, err) {
		return fmt.Sprintf("RDS cluster %s is already in the 'available' state.", target.Id), nil
	}
	return "", err
}

// isAlreadyAvailable はStartDBClusterの失敗が「起動済み」によるものかを判定する
func isAlreadyAvailable(ctx context.Context, client RdsAPI, clusterId string, err error) bool {
	var stateFault *types.InvalidDBClusterStateFault
	if errors.As(err, &stateFault) {
		status, describeErr := clusterStatus(ctx, client, clusterId)
		if describeErr == nil && status == clusterStatusAvailable {
			return true
		}
	}

	// 状態を確認できない場合はエラーメッセージで判定する（互換用）
	return strings.Contains(err.Error(), alreadyAvailableMessage)
}

func clusterStatus(ctx context.Context, client RdsAPI, clusterId string) (string, error) {
	out, err := client.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{
		DBClusterIdentifier: aws.String(clusterId),
	})
	if err != nil {
		return "", err
	}
	if len(out.DBClusters) == 0 {
		return "", fmt.Errorf("クラスター %s が見つかりません", clusterId)
	}
	return aws.ToString(out.DBClusters[0].Status), nil
}
