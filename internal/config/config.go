package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// 既定値
const (
	DefaultPrimaryRegion   = "ap-south-1"
	DefaultSecondaryRegion = "ap-south-2"
	DefaultSuccessSubject  = "infra service started status"
	DefaultFailureSubject  = "GB UAT infra start failed"
	DefaultSmtpPort        = 587

	DefaultServiceMinCapacity int32 = 1
	DefaultServiceMaxCapacity int32 = 2
)

// 環境変数名
const (
	EnvConfigFile      = "ENVSTART_CONFIG_FILE"
	EnvConfigParameter = "ENVSTART_CONFIG_PARAMETER"
	EnvFailurePolicy   = "ENVSTART_FAILURE_POLICY"
	EnvMailTransport   = "ENVSTART_MAIL_TRANSPORT"
	EnvMailFrom        = "ENVSTART_MAIL_FROM"
	EnvMailTo          = "ENVSTART_MAIL_TO"
	EnvSmtpHost        = "ENVSTART_SMTP_HOST"
	EnvSmtpPort        = "ENVSTART_SMTP_PORT"
	EnvSmtpUser        = "ENVSTART_SMTP_USER"
	EnvSmtpPassword    = "ENVSTART_SMTP_PASSWORD"
	EnvSmtpSecretId    = "ENVSTART_SMTP_SECRET_ID"
)

// ParameterGetter はParameter Storeから設定を取得するためのインターフェース
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// LoadOptions は設定読み込みのオプション
type LoadOptions struct {
	File      string              // 設定ファイルのパス（空なら ENVSTART_CONFIG_FILE）
	Parameter string              // SSMパラメータ名（空なら ENVSTART_CONFIG_PARAMETER）
	Ssm       ParameterGetter     // Parameter指定時に必須
	Getenv    func(string) string // nilの場合は os.Getenv
}

// Default は既定値のみの設定を返す
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load は既定値 → 設定ドキュメント → 環境変数 の順で設定を組み立てて検証する
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	file := opts.File
	if file == "" {
		file = getenv(EnvConfigFile)
	}
	parameter := opts.Parameter
	if parameter == "" {
		parameter = getenv(EnvConfigParameter)
	}

	var (
		cfg *Config
		err error
	)
	switch {
	case file != "":
		cfg, err = LoadFile(file)
	case parameter != "":
		cfg, err = LoadParameter(ctx, opts.Ssm, parameter)
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile は拡張子に応じてTOML・YAML・JSONの設定ファイルを読み込む
func LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルにアクセスできません: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s はディレクトリです", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Parse(data, format)
}

// LoadParameter はParameter Storeに保存されたJSONまたはYAMLの設定を読み込む
func LoadParameter(ctx context.Context, client ParameterGetter, name string) (*Config, error) {
	if client == nil {
		return nil, errors.New("SSMクライアントが指定されていません")
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("パラメータ %s の取得に失敗: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return nil, fmt.Errorf("パラメータ %s の値が空です", name)
	}

	value := strings.TrimSpace(aws.ToString(out.Parameter.Value))
	format := "yaml"
	if strings.HasPrefix(value, "{") {
		format = "json"
	}
	return Parse([]byte(value), format)
}

// Parse は指定形式（toml/yaml/yml/json）の設定ドキュメントを解析して既定値を補う
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}

	switch format {
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("TOMLの解析に失敗: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("YAMLの解析に失敗: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("JSONの解析に失敗: %w", err)
		}
	default:
		return nil, fmt.Errorf("サポートされていない設定形式: %s", format)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv は環境変数で設定を上書きする
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvFailurePolicy); v != "" {
		c.FailurePolicy = FailurePolicy(strings.ToLower(v))
	}
	if v := getenv(EnvMailTransport); v != "" {
		c.Mail.Transport = strings.ToLower(v)
	}
	if v := getenv(EnvMailFrom); v != "" {
		c.Mail.From = v
	}
	if v := getenv(EnvMailTo); v != "" {
		c.Mail.To = splitList(v)
	}
	if v := getenv(EnvSmtpHost); v != "" {
		c.Mail.Smtp.Host = v
	}
	if v := getenv(EnvSmtpPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s が数値ではありません: %w", EnvSmtpPort, err)
		}
		c.Mail.Smtp.Port = port
	}
	if v := getenv(EnvSmtpUser); v != "" {
		c.Mail.Smtp.Username = v
	}
	if v := getenv(EnvSmtpPassword); v != "" {
		c.Mail.Smtp.Password = v
	}
	if v := getenv(EnvSmtpSecretId); v != "" {
		c.Mail.Smtp.SecretId = v
	}
	return nil
}

// Validate はリージョン・失敗ポリシー・通知設定を検証する（対象リソースはregistryで検証）
func (c *Config) Validate() error {
	var errs []error

	if c.Regions.Primary == "" || c.Regions.Secondary == "" {
		errs = append(errs, errors.New("regions.primary と regions.secondary は必須です"))
	}

	switch c.FailurePolicy {
	case FailurePolicyAbort, FailurePolicyIsolate:
	default:
		errs = append(errs, fmt.Errorf("不正な failure_policy: %q（abort または isolate）", c.FailurePolicy))
	}

	if c.Mail.From == "" {
		errs = append(errs, errors.New("mail.from は必須です"))
	}
	if len(c.Mail.To) == 0 {
		errs = append(errs, errors.New("mail.to は1件以上必要です"))
	}

	switch c.Mail.Transport {
	case TransportSmtp:
		if c.Mail.Smtp.Host == "" {
			errs = append(errs, errors.New("mail.smtp.host は必須です"))
		}
		if c.Mail.Smtp.Port <= 0 {
			errs = append(errs, fmt.Errorf("不正な mail.smtp.port: %d", c.Mail.Smtp.Port))
		}
	case TransportSes:
	default:
		errs = append(errs, fmt.Errorf("不正な mail.transport: %q（smtp または ses）", c.Mail.Transport))
	}

	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.Regions.Primary == "" {
		c.Regions.Primary = DefaultPrimaryRegion
	}
	if c.Regions.Secondary == "" {
		c.Regions.Secondary = DefaultSecondaryRegion
	}
	if c.FailurePolicy == "" {
		c.FailurePolicy = FailurePolicyAbort
	}
	if c.Capacity == (Capacity{}) {
		c.Capacity = Capacity{MinSize: 1, MaxSize: 3, DesiredCapacity: 1}
	}

	// リージョン未指定のリソースはセカンダリリージョン扱い
	for i := range c.ScalingGroups {
		if c.ScalingGroups[i].Region == "" {
			c.ScalingGroups[i].Region = c.Regions.Secondary
		}
	}
	for i := range c.Instances {
		if c.Instances[i].Region == "" {
			c.Instances[i].Region = c.Regions.Secondary
		}
	}
	for i := range c.Clusters {
		if c.Clusters[i].Region == "" {
			c.Clusters[i].Region = c.Regions.Secondary
		}
	}
	for i := range c.Services {
		if c.Services[i].Region == "" {
			c.Services[i].Region = c.Regions.Secondary
		}
		if c.Services[i].MinCapacity == 0 && c.Services[i].MaxCapacity == 0 {
			c.Services[i].MinCapacity = DefaultServiceMinCapacity
			c.Services[i].MaxCapacity = DefaultServiceMaxCapacity
		}
	}
	for i := range c.Stacks {
		if c.Stacks[i].Region == "" {
			c.Stacks[i].Region = c.Regions.Secondary
		}
	}

	if c.Mail.Transport == "" {
		c.Mail.Transport = TransportSmtp
	}
	if c.Mail.SuccessSubject == "" {
		c.Mail.SuccessSubject = DefaultSuccessSubject
	}
	if c.Mail.FailureSubject == "" {
		c.Mail.FailureSubject = DefaultFailureSubject
	}
	if c.Mail.Smtp.Port == 0 {
		c.Mail.Smtp.Port = DefaultSmtpPort
	}
	if c.Mail.SesRegion == "" {
		c.Mail.SesRegion = c.Regions.Primary
	}
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
