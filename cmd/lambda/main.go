package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	awsclient "envstart/internal/aws"
	"envstart/internal/config"
	"envstart/internal/service/run"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

// handler はスケジュールから呼ばれ、環境を起動して結果をメールで通知する（イベントの内容は使わない）
func handler(ctx context.Context, _ json.RawMessage) (run.Result, error) {
	awsCfg, err := awsclient.LoadAwsConfig(ctx, awsclient.Context{})
	if err != nil {
		log.WithError(err).Error("AWS設定の読み込みに失敗しました")
		return run.Result{}, err
	}

	cfg, err := config.Load(ctx, config.LoadOptions{Ssm: awsclient.NewClients(awsCfg).Ssm()})
	if err != nil {
		log.WithError(err).Error("設定の読み込みに失敗しました")
		return run.Result{}, err
	}
	log.WithFields(logrus.Fields{
		"primary":        cfg.Regions.Primary,
		"secondary":      cfg.Regions.Secondary,
		"failure_policy": cfg.FailurePolicy,
		"transport":      cfg.Mail.Transport,
	}).Info("設定を読み込みました")

	progress := log.WriterLevel(logrus.DebugLevel)
	defer progress.Close()

	runner, err := run.NewFromConfig(ctx, cfg, awsclient.NewRegionalClients(awsCfg), run.Options{
		Out: progress,
		Log: log,
	})
	if err != nil {
		log.WithError(err).Error("通知設定の準備に失敗しました")
		return run.Result{}, err
	}

	return runner.Run(ctx)
}

func main() {
	lambda.Start(handler)
}
