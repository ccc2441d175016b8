package ses

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"envstart/internal/service/common"
)

// VerifyIdentities は指定されたメールアドレスをSESの送信元・送信先として検証する
func VerifyIdentities(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	emails := append([]string(nil), opts.Emails...)

	if opts.FilePath != "" {
		fromFile, err := readEmailsFromFile(opts.FilePath)
		if err != nil {
			return nil, fmt.Errorf("ファイル読み込みエラー: %w", err)
		}
		emails = append(emails, fromFile...)
	}

	if len(emails) == 0 {
		return nil, fmt.Errorf("検証するメールアドレスがありません")
	}

	originalCount := len(emails)

	// 重複を除去
	emails = removeDuplicates(emails)
	duplicateRemoved := originalCount - len(emails)

	failedEmails, details := verifySesEmails(ctx, opts.Client, emails)

	return &VerifyResult{
		TotalEmails:         len(emails),
		SuccessfulEmails:    len(emails) - len(failedEmails),
		FailedEmails:        failedEmails,
		DuplicateRemoved:    duplicateRemoved,
		VerificationDetails: details,
	}, nil
}

// readEmailsFromFile はファイルからメールアドレス一覧を読み込む
func readEmailsFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var emails []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// 空行とコメント行をスキップ
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "@") {
			emails = append(emails, line)
		}
	}

	return emails, scanner.Err()
}

// removeDuplicates は大文字小文字を無視して重複を除去する
func removeDuplicates(emails []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, email := range emails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if !seen[normalized] {
			seen[normalized] = true
			result = append(result, strings.TrimSpace(email))
		}
	}

	return result
}

func verifySesEmails(ctx context.Context, client VerifyAPI, emails []string) ([]string, []EmailVerificationDetail) {
	var failedEmails []string
	var details []EmailVerificationDetail

	for _, email := range emails {
		_, err := client.VerifyEmailIdentity(ctx, &ses.VerifyEmailIdentityInput{
			EmailAddress: aws.String(email),
		})

		details = append(details, EmailVerificationDetail{
			Email:   email,
			Success: err == nil,
			Error:   err,
		})
		if err != nil {
			failedEmails = append(failedEmails, email)
		}
	}

	return failedEmails, details
}

// DisplayVerifyResult は検証結果を表示する
func DisplayVerifyResult(w io.Writer, result *VerifyResult) {
	fmt.Fprintf(w, "%s 検証メール送信: %d件\n", common.SuccessIcon, result.SuccessfulEmails)
	for _, detail := range result.VerificationDetails {
		if detail.Success {
			fmt.Fprintf(w, "  - %s\n", detail.Email)
		}
	}
	if result.DuplicateRemoved > 0 {
		fmt.Fprintf(w, "%s 重複を除外: %d件\n", common.InfoIcon, result.DuplicateRemoved)
	}

	if len(result.FailedEmails) > 0 {
		fmt.Fprintf(w, "\n%s 検証失敗: %d件\n", common.ErrorIcon, len(result.FailedEmails))
		for _, detail := range result.VerificationDetails {
			if !detail.Success {
				fmt.Fprintf(w, "  - %s: %v\n", detail.Email, detail.Error)
			}
		}
	}
}
