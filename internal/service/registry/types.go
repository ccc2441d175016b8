package registry

// ScalingGroupTarget はキャパシティを引き上げるAuto Scaling Group
type ScalingGroupTarget struct {
	Name            string
	Region          string
	MinSize         int32
	MaxSize         int32
	DesiredCapacity int32
}

// InstanceTargets は1リージョン分の起動対象EC2インスタンス
type InstanceTargets struct {
	Region      string
	InstanceIds []string
}

// ClusterTarget は起動対象のDBクラスター
type ClusterTarget struct {
	Id     string
	Region string
}

// ServiceTarget はスケーラブルターゲットを登録するECSサービス
type ServiceTarget struct {
	Region      string
	Cluster     string
	Service     string
	MinCapacity int32
	MaxCapacity int32
}

// Registry は起動対象リソースの一覧（読み込み後は読み取り専用）
type Registry struct {
	Regions       []string
	ScalingGroups []ScalingGroupTarget
	Instances     []InstanceTargets
	Clusters      []ClusterTarget
	Services      []ServiceTarget
}
