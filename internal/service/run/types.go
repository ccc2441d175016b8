package run

import (
	"context"

	"envstart/internal/service/registry"
	"envstart/internal/service/report"
)

// CompletionMessage は処理完了時に必ず返すメッセージ
const CompletionMessage = "Process completed with some potential errors. Check email for details."

// Result は呼び出し元に返す完了レコード
type Result struct {
	StatusCode int        `json:"statusCode"`
	Body       ResultBody `json:"body"`
}

// ResultBody は完了レコードの本文
type ResultBody struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// StartAPI は起動処理（starter.Starter）のインターフェース
type StartAPI interface {
	Start(ctx context.Context, reg *registry.Registry, rep *report.Report) error
}

// TargetsFunc は起動対象一覧を用意する
type TargetsFunc func(ctx context.Context) (*registry.Registry, error)
