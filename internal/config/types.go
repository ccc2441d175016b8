package config

// FailurePolicy はスケーリング・EC2起動の失敗時の扱いを表す
type FailurePolicy string

const (
	// FailurePolicyAbort は最初の失敗で残りの処理を中断する（DBクラスターは常に個別処理）
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicyIsolate はリソースごとに失敗を記録して処理を続行する
	FailurePolicyIsolate FailurePolicy = "isolate"
)

// メール送信方式
const (
	TransportSmtp = "smtp"
	TransportSes  = "ses"
)

// Config は起動対象・失敗ポリシー・通知設定をまとめた設定
type Config struct {
	Regions       Regions               `json:"regions" yaml:"regions" toml:"regions"`
	FailurePolicy FailurePolicy         `json:"failure_policy" yaml:"failure_policy" toml:"failure_policy"`
	Capacity      Capacity              `json:"capacity" yaml:"capacity" toml:"capacity"`
	ScalingGroups []ScalingGroupConfig  `json:"scaling_groups" yaml:"scaling_groups" toml:"scaling_groups"`
	Instances     []InstanceGroupConfig `json:"instances" yaml:"instances" toml:"instances"`
	Clusters      []ClusterConfig       `json:"clusters" yaml:"clusters" toml:"clusters"`
	Services      []ServiceConfig       `json:"services" yaml:"services" toml:"services"`
	Stacks        []StackConfig         `json:"stacks" yaml:"stacks" toml:"stacks"`
	Mail          MailConfig            `json:"mail" yaml:"mail" toml:"mail"`
}

// Regions は対象の2リージョン
type Regions struct {
	Primary   string `json:"primary" yaml:"primary" toml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary" toml:"secondary"`
}

// Capacity はAuto Scaling Groupに設定するキャパシティ
type Capacity struct {
	MinSize         int32 `json:"min_size" yaml:"min_size" toml:"min_size"`
	MaxSize         int32 `json:"max_size" yaml:"max_size" toml:"max_size"`
	DesiredCapacity int32 `json:"desired_capacity" yaml:"desired_capacity" toml:"desired_capacity"`
}

// ScalingGroupConfig はAuto Scaling Groupの指定（Capacity未指定時は共通値）
type ScalingGroupConfig struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Region   string    `json:"region" yaml:"region" toml:"region"`
	Capacity *Capacity `json:"capacity,omitempty" yaml:"capacity,omitempty" toml:"capacity,omitempty"`
}

// InstanceGroupConfig はリージョンごとのEC2インスタンス指定
type InstanceGroupConfig struct {
	Region       string   `json:"region" yaml:"region" toml:"region"`
	Ids          []string `json:"ids" yaml:"ids" toml:"ids"`
	NamePatterns []string `json:"name_patterns" yaml:"name_patterns" toml:"name_patterns"`
}

// ClusterConfig はDBクラスターの指定
type ClusterConfig struct {
	Id     string `json:"id" yaml:"id" toml:"id"`
	Region string `json:"region" yaml:"region" toml:"region"`
}

// ServiceConfig はECSサービスの指定
type ServiceConfig struct {
	Cluster     string `json:"cluster" yaml:"cluster" toml:"cluster"`
	Service     string `json:"service" yaml:"service" toml:"service"`
	Region      string `json:"region" yaml:"region" toml:"region"`
	MinCapacity int32  `json:"min_capacity" yaml:"min_capacity" toml:"min_capacity"`
	MaxCapacity int32  `json:"max_capacity" yaml:"max_capacity" toml:"max_capacity"`
}

// StackConfig はリソース検出に使うCloudFormationスタック
type StackConfig struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Region string `json:"region" yaml:"region" toml:"region"`
}

// MailConfig は結果通知メールの設定
type MailConfig struct {
	Transport      string     `json:"transport" yaml:"transport" toml:"transport"`
	From           string     `json:"from" yaml:"from" toml:"from"`
	To             []string   `json:"to" yaml:"to" toml:"to"`
	SuccessSubject string     `json:"success_subject" yaml:"success_subject" toml:"success_subject"`
	FailureSubject string     `json:"failure_subject" yaml:"failure_subject" toml:"failure_subject"`
	SesRegion      string     `json:"ses_region" yaml:"ses_region" toml:"ses_region"`
	Smtp           SmtpConfig `json:"smtp" yaml:"smtp" toml:"smtp"`
}

// SmtpConfig はSMTPサーバーの接続情報（SecretIdがあれば認証情報はSecrets Managerから取得）
type SmtpConfig struct {
	Host     string `json:"host" yaml:"host" toml:"host"`
	Port     int    `json:"port" yaml:"port" toml:"port"`
	Username string `json:"username" yaml:"username" toml:"username"`
	Password string `json:"password" yaml:"password" toml:"password"`
	SecretId string `json:"secret_id" yaml:"secret_id" toml:"secret_id"`
}
