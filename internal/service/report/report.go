package report

import (
	"fmt"
	"strings"
)

// Report は起動処理の結果行とメール件名を保持する（追記のみ）
type Report struct {
	lines          []string
	failed         bool
	successSubject string
	failureSubject string
}

// New は成功時・失敗時の件名を指定してReportを作成する
func New(successSubject, failureSubject string) *Report {
	return &Report{
		successSubject: successSubject,
		failureSubject: failureSubject,
	}
}

// Add は結果行を追加する（複数行を含んでもよい）
func (r *Report) Add(line string) {
	r.lines = append(r.lines, line)
}

// Addf はフォーマットした結果行を追加する
func (r *Report) Addf(format string, args ...any) {
	r.Add(fmt.Sprintf(format, args...))
}

// Fail は処理全体を中断したエラーを記録して件名を失敗に切り替える
func (r *Report) Fail(err error) {
	r.Addf("An error occurred: %v", err)
	r.failed = true
}

// MarkFailed は結果行を追加せずに件名を失敗に切り替える
func (r *Report) MarkFailed() {
	r.failed = true
}

// Failed は失敗として扱われているかを返す
func (r *Report) Failed() bool {
	return r.failed
}

// Subject はメール件名を返す
func (r *Report) Subject() string {
	if r.failed {
		return r.failureSubject
	}
	return r.successSubject
}

// Lines は追加された結果行を返す
func (r *Report) Lines() []string {
	return append([]string(nil), r.lines...)
}

// String は各結果行を改行で終端して連結した本文を返す
func (r *Report) String() string {
	var b strings.Builder
	for _, line := range r.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
