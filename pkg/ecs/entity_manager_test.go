package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTweenComponent struct {
	Property string
	Value    float64
}

type testTriggerComponent struct {
	Fired bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testTweenComponent{Property: "opacity", Value: 0.5})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testTweenComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testTweenComponent)
	if retrieved.Property != "opacity" || retrieved.Value != 0.5 {
		t.Errorf("Component data mismatch, got %+v", retrieved)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTriggerComponent{Fired: true})

	trig, ok := GetComponent[*testTriggerComponent](em, id)
	if !ok || !trig.Fired {
		t.Fatalf("GetComponent = (%v, %v), want fired trigger", trig, ok)
	}

	if _, ok := GetComponent[*testTweenComponent](em, id); ok {
		t.Error("Missing component type should not be found")
	}

	if !HasComponent[*testTriggerComponent](em, id) {
		t.Error("HasComponent should report trigger component")
	}

	RemoveComponent[*testTriggerComponent](em, id)
	if HasComponent[*testTriggerComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTweenComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) || em.HasComponent(id, reflect.TypeOf(&testTweenComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testTweenComponent{})
	em.AddComponent(id1, &testTriggerComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testTweenComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testTriggerComponent{})

	entities := GetEntitiesWith2[*testTweenComponent, *testTriggerComponent](em)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	tweens := GetEntitiesWith1[*testTweenComponent](em)
	if len(tweens) != 2 {
		t.Errorf("Expected 2 entities with tween component, got %d", len(tweens))
	}
}

// TestGetEntitiesWithOrder 查询结果必须按创建顺序返回
func TestGetEntitiesWithOrder(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 64; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTriggerComponent{})
		want = append(want, id)
	}

	for round := 0; round < 5; round++ {
		got := GetEntitiesWith1[*testTriggerComponent](em)
		if len(got) != len(want) {
			t.Fatalf("got %d entities, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("round %d: position %d = %d, want %d", round, i, got[i], want[i])
			}
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testTweenComponent{})
	em.AddComponent(id2, &testTweenComponent{})
	em.AddComponent(id3, &testTweenComponent{})

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	remaining := GetEntitiesWith1[*testTweenComponent](em)
	if len(remaining) != 1 || remaining[0] != id2 {
		t.Errorf("Expected only id2 to remain, got %v", remaining)
	}
}

func TestAddComponentEdgeCases(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体
	em.AddComponent(42, &testTweenComponent{})
	if HasComponent[*testTweenComponent](em, 42) {
		t.Error("不存在的实体不应获得组件")
	}

	// 同类型组件被替换
	id := em.CreateEntity()
	AddComponent(em, id, &testTweenComponent{Value: 1})
	AddComponent(em, id, &testTweenComponent{Value: 2})
	comp, _ := GetComponent[*testTweenComponent](em, id)
	if comp.Value != 2 {
		t.Errorf("Value = %v, want 2", comp.Value)
	}
	if got := GetEntitiesWith1[*testTweenComponent](em); len(got) != 1 {
		t.Errorf("替换不应产生重复，实际 %v", got)
	}

	RemoveComponent[*testTweenComponent](em, id)
	if HasComponent[*testTweenComponent](em, id) {
		t.Error("组件应已移除")
	}
	if !em.Exists(id) {
		t.Error("移除组件不应删除实体")
	}
}
