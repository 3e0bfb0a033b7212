package registry

import (
	"context"
	"reflect"
	"sync"
)

// identityCache memoizes the reflect-derived identity string per Go type so
// typed lookups stay off the reflection path after first use.
var identityCache sync.Map // reflect.Type -> string

// IdentityOf returns the interface identity used for the Go type T. Modules
// constructed in Go code can use it when declaring their interface sets so
// typed lookups and discovery metadata agree on names.
func IdentityOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := identityCache.Load(t); ok {
		return cached.(string)
	}
	identity := t.String()
	identityCache.Store(t, identity)
	return identity
}

// First is the typed flavor of Registry.First, using IdentityOf[T] as the
// requested interface. An instance whose dynamic type does not satisfy T is
// treated as absent.
func First[T any](ctx context.Context, r *Registry) (T, error) {
	var zero T
	instance, err := r.First(ctx, IdentityOf[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// All is the typed flavor of Registry.All.
func All[T any](ctx context.Context, r *Registry) ([]T, error) {
	instances, err := r.All(ctx, IdentityOf[T]())
	return assertAll[T](instances), err
}

// ByCategory is the typed flavor of Registry.ByCategory.
func ByCategory[T any](ctx context.Context, r *Registry, category string) ([]T, error) {
	instances, err := r.ByCategory(ctx, IdentityOf[T](), category)
	return assertAll[T](instances), err
}

// ByGroup is the typed flavor of Registry.ByGroup.
func ByGroup[T any](ctx context.Context, r *Registry, group string) ([]T, error) {
	instances, err := r.ByGroup(ctx, IdentityOf[T](), group)
	return assertAll[T](instances), err
}

// Instance is the typed flavor of Registry.Instance.
func Instance[T any](ctx context.Context, r *Registry, identity string) (T, error) {
	var zero T
	instance, err := r.Instance(ctx, identity)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

func assertAll[T any](instances []any) []T {
	if len(instances) == 0 {
		return nil
	}
	out := make([]T, 0, len(instances))
	for _, instance := range instances {
		if typed, ok := instance.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
