package run

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"envstart/internal/config"
	"envstart/internal/service/common"
	"envstart/internal/service/notify"
	"envstart/internal/service/report"
)

// Runner は起動対象の準備・起動・結果通知を1回分実行する
type Runner struct {
	Targets TargetsFunc
	Starter StartAPI
	// Sender が nil の場合はメールを送信しない
	Sender notify.Sender
	Mail   config.MailConfig
	Log    logrus.FieldLogger
	Now    func() time.Time
}

// Run は起動処理を実行して結果メールを送信する
//
// 起動処理の失敗はメール本文と件名に反映され、エラーとしては返さない。
// メール送信に失敗した場合のみエラーを返す。
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	rep := report.New(r.Mail.SuccessSubject, r.Mail.FailureSubject)

	reg, err := r.Targets(ctx)
	if err == nil {
		err = reg.Validate()
	}
	if err != nil {
		log.WithError(err).Error("起動対象の準備に失敗しました")
		rep.Fail(err)
	} else if err := r.Starter.Start(ctx, reg, rep); err != nil {
		log.WithError(err).Warn("起動処理でエラーが発生しました")
	}

	fields := logrus.Fields{"subject": rep.Subject(), "failed": rep.Failed()}
	log.WithFields(fields).Info(rep.String())

	if r.Sender != nil {
		msg := notify.Message{
			From:    r.Mail.From,
			To:      r.Mail.To,
			Subject: rep.Subject(),
			Body:    rep.String(),
			Date:    r.now(),
		}
		if err := r.Sender.Send(ctx, msg); err != nil {
			log.WithFields(fields).WithError(err).Error("結果メールの送信に失敗しました")
			return Result{}, fmt.Errorf(common.SendErrorFormat, common.ErrorIcon, "結果メール", err)
		}
		log.WithFields(fields).Info("結果メールを送信しました")
	}

	return newResult(rep), nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func newResult(rep *report.Report) Result {
	return Result{
		StatusCode: http.StatusOK,
		Body: ResultBody{
			Message: CompletionMessage,
			Details: rep.String(),
		},
	}
}
