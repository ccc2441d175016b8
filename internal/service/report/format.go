package report

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// FormatStartingInstances はStartInstancesの結果をインスタンスごとの状態遷移行に変換する
func FormatStartingInstances(changes []types.InstanceStateChange) string {
	statuses := make([]string, 0, len(changes))
	for _, change := range changes {
		statuses = append(statuses, fmt.Sprintf("Instance %s changed from %s to %s.",
			aws.ToString(change.InstanceId), stateName(change.PreviousState), stateName(change.CurrentState)))
	}
	return strings.Join(statuses, "\n")
}

func stateName(state *types.InstanceState) string {
	if state == nil {
		return ""
	}
	return string(state.Name)
}
