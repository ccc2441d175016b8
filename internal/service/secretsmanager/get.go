package secretsmanager

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretValueAPI はシークレット取得に必要なSecrets Manager APIのインターフェース
type SecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// GetSecretValues Secrets Managerからシークレット値を取得してMapで返す
func GetSecretValues(ctx context.Context, client SecretValueAPI, secretName string) (map[string]interface{}, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	}

	result, err := client.GetSecretValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("シークレット取得に失敗: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("シークレット %s に文字列の値がありません", secretName)
	}

	// シークレット値をJSONとしてパース
	var secretMap map[string]interface{}
	err = json.Unmarshal([]byte(*result.SecretString), &secretMap)
	if err != nil {
		return nil, fmt.Errorf("シークレットのJSON解析に失敗: %w", err)
	}

	return secretMap, nil
}

// GetString はシークレットから文字列の値を取り出す
func GetString(values map[string]interface{}, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("シークレットにキー %s がありません", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("シークレットのキー %s が文字列ではありません", key)
	}
	return s, nil
}
