package run

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclient "envstart/internal/aws"
	"envstart/internal/config"
	"envstart/internal/service/notify"
	"envstart/internal/service/registry"
	"envstart/internal/service/report"
)

type fakeStarter struct {
	calls int
	run   func(rep *report.Report) error
}

func (f *fakeStarter) Start(ctx context.Context, reg *registry.Registry, rep *report.Report) error {
	f.calls++
	if f.run != nil {
		return f.run(rep)
	}
	return nil
}

type fakeSender struct {
	sent []notify.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg notify.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func mailConfig() config.MailConfig {
	return config.MailConfig{
		From:           "infra@example.com",
		To:             []string{"ops@example.com"},
		SuccessSubject: config.DefaultSuccessSubject,
		FailureSubject: config.DefaultFailureSubject,
	}
}

func newRunner(st StartAPI, sender notify.Sender, targetsErr error) *Runner {
	reg := &registry.Registry{Clusters: []registry.ClusterTarget{{Id: "uat-cluster-1", Region: "ap-south-2"}}}
	return &Runner{
		Targets: func(context.Context) (*registry.Registry, error) {
			if targetsErr != nil {
				return nil, targetsErr
			}
			return reg, nil
		},
		Starter: st,
		Sender:  sender,
		Mail:    mailConfig(),
		Log:     quietLogger(),
		Now:     func() time.Time { return time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestRunSendsOneEmail(t *testing.T) {
	st := &fakeStarter{run: func(rep *report.Report) error {
		rep.Add("RDS cluster uat-cluster-1 started successfully.")
		return nil
	}}
	sender := &fakeSender{}

	result, err := newRunner(st, sender, nil).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "infra service started status", msg.Subject)
	assert.Equal(t, "RDS cluster uat-cluster-1 started successfully.\n", msg.Body)
	assert.Equal(t, "infra@example.com", msg.From)
	assert.Equal(t, []string{"ops@example.com"}, msg.To)

	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, CompletionMessage, result.Body.Message)
	assert.Equal(t, msg.Body, result.Body.Details)
}

func TestRunStartFailureStillReturns200(t *testing.T) {
	st := &fakeStarter{run: func(rep *report.Report) error {
		err := errors.New("ValidationError")
		rep.Fail(err)
		return err
	}}
	sender := &fakeSender{}

	result, err := newRunner(st, sender, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "GB UAT infra start failed", sender.sent[0].Subject)
	assert.Equal(t, "An error occurred: ValidationError\n", sender.sent[0].Body)
}

func TestRunTargetsFailureIsReported(t *testing.T) {
	st := &fakeStarter{}
	sender := &fakeSender{}

	_, err := newRunner(st, sender, errors.New("stack not found")).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.calls)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "GB UAT infra start failed", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "An error occurred: stack not found")
}

func TestRunInvalidTargetsAreReported(t *testing.T) {
	st := &fakeStarter{}
	sender := &fakeSender{}
	runner := newRunner(st, sender, nil)
	runner.Targets = Static(&registry.Registry{Clusters: []registry.ClusterTarget{{Region: "ap-south-2"}}})

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.calls)
	assert.Equal(t, "GB UAT infra start failed", sender.sent[0].Subject)
}

func TestRunSendFailurePropagates(t *testing.T) {
	sender := &fakeSender{err: errors.New("535 authentication failed")}

	_, err := newRunner(&fakeStarter{}, sender, nil).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "535 authentication failed")
	assert.Len(t, sender.sent, 1)
}

func TestRunWithoutSender(t *testing.T) {
	st := &fakeStarter{}
	result, err := newRunner(st, nil, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, st.calls)
	assert.Equal(t, 200, result.StatusCode)
}

func TestResultJSON(t *testing.T) {
	rep := report.New("ok", "ng")
	rep.Add("line")

	data, err := json.Marshal(newResult(rep))
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"body":{"message":"Process completed with some potential errors. Check email for details.","details":"line\n"}}`, string(data))
}

func TestNewFromConfigTargetsFailureStillSendsOneEmail(t *testing.T) {
	cfg := config.Default()
	cfg.Mail = mailConfig()
	sender := &fakeSender{}
	observed := 0

	targets := Observe(func(context.Context) (*registry.Registry, error) {
		return nil, errors.New("DescribeStackResources: stack uat-stack does not exist")
	}, func(*registry.Registry) { observed++ })

	runner, err := NewFromConfig(context.Background(), cfg,
		awsclient.NewRegionalClients(aws.Config{Region: config.DefaultPrimaryRegion}),
		Options{Targets: targets, Sender: sender, Log: quietLogger()})
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	assert.Zero(t, observed)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "GB UAT infra start failed", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "An error occurred: DescribeStackResources: stack uat-stack does not exist")
}

func TestObservePassesTargetsThrough(t *testing.T) {
	reg := &registry.Registry{Clusters: []registry.ClusterTarget{{Id: "uat-cluster-1", Region: "ap-south-2"}}}
	var seen *registry.Registry

	got, err := Observe(Static(reg), func(r *registry.Registry) { seen = r })(context.Background())
	require.NoError(t, err)
	assert.Same(t, reg, got)
	assert.Same(t, reg, seen)
}
