package registry

import (
	"errors"
	"fmt"
	"slices"

	"envstart/internal/config"
)

// FromConfig は設定から起動対象一覧を組み立てる（名前パターン・スタックからの検出は Discover で行う）
func FromConfig(cfg *config.Config) *Registry {
	r := &Registry{
		Regions: []string{cfg.Regions.Primary, cfg.Regions.Secondary},
	}

	for _, sg := range cfg.ScalingGroups {
		capacity := cfg.Capacity
		if sg.Capacity != nil {
			capacity = *sg.Capacity
		}
		r.ScalingGroups = append(r.ScalingGroups, ScalingGroupTarget{
			Name:            sg.Name,
			Region:          sg.Region,
			MinSize:         capacity.MinSize,
			MaxSize:         capacity.MaxSize,
			DesiredCapacity: capacity.DesiredCapacity,
		})
	}

	for _, group := range cfg.Instances {
		r.AddInstances(group.Region, group.Ids...)
	}

	for _, cl := range cfg.Clusters {
		r.AddCluster(ClusterTarget{Id: cl.Id, Region: cl.Region})
	}

	for _, svc := range cfg.Services {
		r.AddService(ServiceTarget{
			Region:      svc.Region,
			Cluster:     svc.Cluster,
			Service:     svc.Service,
			MinCapacity: svc.MinCapacity,
			MaxCapacity: svc.MaxCapacity,
		})
	}

	return r
}

// AddScalingGroup は同名・同リージョンのグループが未登録なら追加する
func (r *Registry) AddScalingGroup(target ScalingGroupTarget) {
	for _, sg := range r.ScalingGroups {
		if sg.Name == target.Name && sg.Region == target.Region {
			return
		}
	}
	r.ScalingGroups = append(r.ScalingGroups, target)
}

// AddInstances はリージョンのインスタンス一覧に未登録のIDを追加する
func (r *Registry) AddInstances(region string, ids ...string) {
	idx := slices.IndexFunc(r.Instances, func(t InstanceTargets) bool { return t.Region == region })
	if idx < 0 {
		r.Instances = append(r.Instances, InstanceTargets{Region: region})
		idx = len(r.Instances) - 1
	}
	for _, id := range ids {
		if !slices.Contains(r.Instances[idx].InstanceIds, id) {
			r.Instances[idx].InstanceIds = append(r.Instances[idx].InstanceIds, id)
		}
	}
}

// AddCluster は未登録のDBクラスターを追加する
func (r *Registry) AddCluster(target ClusterTarget) {
	if !slices.Contains(r.Clusters, target) {
		r.Clusters = append(r.Clusters, target)
	}
}

// AddService は未登録のECSサービスを追加する
func (r *Registry) AddService(target ServiceTarget) {
	for _, svc := range r.Services {
		if svc.Region == target.Region && svc.Cluster == target.Cluster && svc.Service == target.Service {
			return
		}
	}
	r.Services = append(r.Services, target)
}

// Count は起動処理の件数（ASG・リージョン単位のEC2起動・クラスター・サービス）を返す
func (r *Registry) Count() int {
	count := len(r.ScalingGroups) + len(r.Clusters) + len(r.Services)
	for _, group := range r.Instances {
		if len(group.InstanceIds) > 0 {
			count++
		}
	}
	return count
}

// Validate は起動対象の内容を検証する
func (r *Registry) Validate() error {
	var errs []error

	for _, region := range r.Regions {
		if region == "" {
			errs = append(errs, errors.New("リージョンが空です"))
		}
	}

	for i, sg := range r.ScalingGroups {
		if sg.Name == "" {
			errs = append(errs, fmt.Errorf("scaling_groups[%d]: 名前が空です", i))
		}
		if sg.Region == "" {
			errs = append(errs, fmt.Errorf("scaling_groups[%d]: リージョンが空です", i))
		}
		if sg.MinSize < 0 || sg.MinSize > sg.DesiredCapacity || sg.DesiredCapacity > sg.MaxSize {
			errs = append(errs, fmt.Errorf("scaling_groups[%d] (%s): MinSize <= DesiredCapacity <= MaxSize を満たしていません (%d/%d/%d)",
				i, sg.Name, sg.MinSize, sg.DesiredCapacity, sg.MaxSize))
		}
	}

	for _, group := range r.Instances {
		if group.Region == "" {
			errs = append(errs, errors.New("instances: リージョンが空です"))
		}
		for _, id := range group.InstanceIds {
			if id == "" {
				errs = append(errs, fmt.Errorf("instances (%s): 空のインスタンスIDがあります", group.Region))
			}
		}
	}

	for i, cl := range r.Clusters {
		if cl.Id == "" {
			errs = append(errs, fmt.Errorf("clusters[%d]: クラスターIDが空です", i))
		}
		if cl.Region == "" {
			errs = append(errs, fmt.Errorf("clusters[%d]: リージョンが空です", i))
		}
	}

	for i, svc := range r.Services {
		if svc.Cluster == "" || svc.Service == "" {
			errs = append(errs, fmt.Errorf("services[%d]: cluster と service は必須です", i))
		}
		if svc.MinCapacity < 0 || svc.MinCapacity > svc.MaxCapacity {
			errs = append(errs, fmt.Errorf("services[%d] (%s/%s): MinCapacity <= MaxCapacity を満たしていません", i, svc.Cluster, svc.Service))
		}
	}

	return errors.Join(errs...)
}
