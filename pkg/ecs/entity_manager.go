package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理实体与组件的存储
//
// 组件按其动态类型（通常是指针类型）存放，每个实体每种类型最多一个组件。
// 销毁是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 才真正清理，
// 这样系统在遍历查询结果时可以安全地销毁实体。
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]any
	pending    []EntityID
}

// NewEntityManager 创建一个空的 EntityManager
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回其 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Exists 判断实体是否存在（已标记但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// EntityCount 返回当前存活的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pending = append(em.pending, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pending {
		delete(em.components, id)
	}
	em.pending = em.pending[:0]
}

// AddComponent 为实体添加组件，同类型组件会被替换；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if comps, ok := em.components[id]; ok {
		comps[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 移除实体上指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if comps, ok := em.components[id]; ok {
		delete(comps, componentType)
	}
}

// GetComponent 获取实体上指定类型的组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comps, ok := em.components[id]
	if !ok {
		return nil, false
	}
	comp, ok := comps[componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有指定类型的组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.GetComponent(id, componentType)
	return ok
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体
//
// 结果按 ID 升序排列，保证系统的处理顺序与创建顺序一致。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, comps := range em.components {
		if hasAll(comps, componentTypes) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func hasAll(comps map[reflect.Type]any, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := comps[t]; !ok {
			return false
		}
	}
	return true
}
