package ecs

import (
	"reflect"
	"slices"
)

// EntityID 实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 管理实体及其组件
//
// 组件按类型分列存储，查询只遍历最短的一列。
// 查询结果按实体ID升序返回：绑定、补间和时间轴的求值顺序
// 必须与注册顺序一致（同一帧内的写入冲突按调用顺序决出）。
type EntityManager struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	// 组件类型 -> 实体 -> 组件实例
	stores map[reflect.Type]map[EntityID]any
	// 延迟到帧末删除的实体
	pendingDestroy []EntityID
}

// NewEntityManager 创建实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
		stores: make(map[reflect.Type]map[EntityID]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.alive[id] = struct{}{}
	return id
}

// DestroyEntity 标记实体待删除，RemoveMarkedEntities 时才真正移除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pendingDestroy = append(em.pendingDestroy, id)
}

// Exists 实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.alive[id]
	return ok
}

// EntityCount 当前存活的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.alive)
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if !em.Exists(id) {
		return
	}
	t := reflect.TypeOf(component)
	store, ok := em.stores[t]
	if !ok {
		store = make(map[EntityID]any)
		em.stores[t] = store
	}
	store[id] = component
}

// RemoveComponent 移除实体的指定类型组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	delete(em.stores[componentType], id)
}

// GetComponent 获取实体的指定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.stores[componentType][id]
	return comp, ok
}

// HasComponent 实体是否拥有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.stores[componentType][id]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体（每帧末尾调用）
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pendingDestroy {
		delete(em.alive, id)
		for _, store := range em.stores {
			delete(store, id)
		}
	}
	em.pendingDestroy = em.pendingDestroy[:0]
}

// GetEntitiesWith 查询同时拥有全部指定组件类型的实体，按ID升序返回
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	if len(componentTypes) == 0 {
		result := make([]EntityID, 0, len(em.alive))
		for id := range em.alive {
			result = append(result, id)
		}
		slices.Sort(result)
		return result
	}

	// 从最短的一列开始筛选
	shortest := em.stores[componentTypes[0]]
	for _, t := range componentTypes[1:] {
		if len(em.stores[t]) < len(shortest) {
			shortest = em.stores[t]
		}
	}

	result := make([]EntityID, 0, len(shortest))
	for id := range shortest {
		if em.hasAll(id, componentTypes) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

func (em *EntityManager) hasAll(id EntityID, componentTypes []reflect.Type) bool {
	for _, t := range componentTypes {
		if _, ok := em.stores[t][id]; !ok {
			return false
		}
	}
	return true
}
