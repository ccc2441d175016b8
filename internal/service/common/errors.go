package common

// メッセージの絵文字定数
const (
	ErrorIcon   = "❌"
	SuccessIcon = "✅"
	WarningIcon = "⚠️"
	SearchIcon  = "🔍"
	InfoIcon    = "📋"
	StartIcon   = "🚀"
	MailIcon    = "📧"
)

// エラーメッセージフォーマット定数
const (
	ListErrorFormat    = "%s %s一覧の取得に失敗: %w"
	StartErrorFormat   = "%s %s の起動に失敗: %w"
	UpdateErrorFormat  = "%s %s の更新に失敗: %w"
	EnableErrorFormat  = "%s %s の有効化に失敗: %w"
	DisableErrorFormat = "%s %s の無効化に失敗: %w"
	GetErrorFormat     = "%s %s の取得に失敗: %w"
	SendErrorFormat    = "%s %s の送信に失敗: %w"

	// 成功メッセージ
	StartSuccessFormat   = "%s %s の起動を開始しました"
	UpdateSuccessFormat  = "%s %s を更新しました"
	EnableSuccessFormat  = "%s %s を有効化しました"
	DisableSuccessFormat = "%s %s を無効化しました"
	SendSuccessFormat    = "%s %s を送信しました"

	// 処理中メッセージ
	StartingFormat  = "%s %s を起動します..."
	SearchingFormat = "%s %s を検索中..."
)
