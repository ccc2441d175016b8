package run

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	awsclient "envstart/internal/aws"
	"envstart/internal/config"
	"envstart/internal/service/notify"
	"envstart/internal/service/registry"
	"envstart/internal/service/starter"
)

// Options はNewFromConfigの動作設定
type Options struct {
	// Targets が nil の場合は設定と検出結果から起動対象を組み立てる
	Targets  TargetsFunc
	Out      io.Writer
	Progress func(label string)
	NoEmail  bool
	// Sender が指定された場合は設定から送信手段を組み立てない
	Sender notify.Sender
	Log    logrus.FieldLogger
}

// NewFromConfig は設定とAWSクライアントからRunnerを組み立てる
func NewFromConfig(ctx context.Context, cfg *config.Config, clients *awsclient.RegionalClients, opts Options) (*Runner, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	targets := opts.Targets
	if targets == nil {
		targets = DiscoverTargets(cfg, clients, out)
	}

	sender := opts.Sender
	if sender == nil && !opts.NoEmail {
		var err error
		sender, err = notify.NewSender(ctx, cfg.Mail,
			clients.In(cfg.Mail.SesRegion).Ses(),
			clients.In(cfg.Regions.Primary).SecretsManager())
		if err != nil {
			return nil, err
		}
	}

	return &Runner{
		Targets: targets,
		Starter: starter.New(starter.NewAwsProvider(clients), starter.Options{
			Policy:   cfg.FailurePolicy,
			Out:      out,
			Progress: opts.Progress,
		}),
		Sender: sender,
		Mail:   cfg.Mail,
		Log:    opts.Log,
	}, nil
}

// DiscoverTargets は設定の起動対象に名前パターン・スタックからの検出結果を加える
func DiscoverTargets(cfg *config.Config, clients *awsclient.RegionalClients, out io.Writer) TargetsFunc {
	return func(ctx context.Context) (*registry.Registry, error) {
		reg := registry.FromConfig(cfg)
		if err := registry.Discover(ctx, reg, cfg, registry.NewAwsDiscoveryClients(clients), out); err != nil {
			return nil, err
		}
		return reg, nil
	}
}

// Static は用意済みの起動対象一覧をそのまま返すTargetsFuncを作成する
func Static(reg *registry.Registry) TargetsFunc {
	return func(context.Context) (*registry.Registry, error) {
		return reg, nil
	}
}

// Observe は起動対象の準備に成功した場合のみ fn を呼び出すTargetsFuncを作成する
func Observe(targets TargetsFunc, fn func(reg *registry.Registry)) TargetsFunc {
	return func(ctx context.Context) (*registry.Registry, error) {
		reg, err := targets(ctx)
		if err != nil {
			return nil, err
		}
		fn(reg)
		return reg, nil
	}
}
