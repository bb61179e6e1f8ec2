package ecs

import (
	"reflect"
	"sync"
)

// Kind identifies a component type. Kinds are process wide: every call to
// KindOf or NewComponent for the same Go type yields the same Kind.
type Kind struct {
	id uint32
}

type kindInfo struct {
	name     string
	typ      reflect.Type
	newStore func(capacity int) storage
}

var kindRegistry = struct {
	sync.Mutex
	byType map[reflect.Type]Kind
	infos  []kindInfo
}{byType: make(map[reflect.Type]Kind)}

// KindOf returns the kind for component type T. Components of kind T are
// always stored and passed around as *T.
func KindOf[T any]() Kind {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	kindRegistry.Lock()
	defer kindRegistry.Unlock()

	if k, ok := kindRegistry.byType[typ]; ok {
		return k
	}
	kindRegistry.infos = append(kindRegistry.infos, kindInfo{
		name:     typ.String(),
		typ:      typ,
		newStore: func(capacity int) storage { return newStore[T](capacity) },
	})
	k := Kind{id: uint32(len(kindRegistry.infos))}
	kindRegistry.byType[typ] = k
	return k
}

// kindOfValue resolves the kind of a *T component value.
func kindOfValue(v any) (Kind, bool) {
	typ := reflect.TypeOf(v)
	if typ == nil || typ.Kind() != reflect.Pointer {
		return Kind{}, false
	}
	kindRegistry.Lock()
	defer kindRegistry.Unlock()
	k, ok := kindRegistry.byType[typ.Elem()]
	return k, ok
}

func (k Kind) info() kindInfo {
	kindRegistry.Lock()
	defer kindRegistry.Unlock()
	return kindRegistry.infos[k.id-1]
}

func (k Kind) Valid() bool {
	return k.id != 0
}

func (k Kind) String() string {
	if !k.Valid() {
		return "<invalid>"
	}
	return k.info().name
}

// Handle is a typed Kind.
type Handle[T any] struct {
	kind Kind
}

func NewComponent[T any]() Handle[T] {
	return Handle[T]{kind: KindOf[T]()}
}

func (h Handle[T]) Kind() Kind {
	return h.kind
}
