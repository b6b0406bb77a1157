package lookup

import (
	"context"
	"sync"
)

var _ nameCache = &nameCacheMock{}

type nameCacheMock struct {
	GetManyFunc func(ctx context.Context, kind string, ids []string) (map[string]string, error)
	SetManyFunc func(ctx context.Context, kind string, names map[string]string) error

	calls struct {
		GetMany []struct {
			Ctx  context.Context
			Kind string
			Ids  []string
		}
		SetMany []struct {
			Ctx   context.Context
			Kind  string
			Names map[string]string
		}
	}
	lockGetMany sync.RWMutex
	lockSetMany sync.RWMutex
}

func (mock *nameCacheMock) GetMany(ctx context.Context, kind string, ids []string) (map[string]string, error) {
	if mock.GetManyFunc == nil {
		panic("nameCacheMock.GetManyFunc: method is nil but nameCache.GetMany was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind string
		Ids  []string
	}{Ctx: ctx, Kind: kind, Ids: ids}
	mock.lockGetMany.Lock()
	mock.calls.GetMany = append(mock.calls.GetMany, callInfo)
	mock.lockGetMany.Unlock()
	return mock.GetManyFunc(ctx, kind, ids)
}

func (mock *nameCacheMock) GetManyCalls() []struct {
	Ctx  context.Context
	Kind string
	Ids  []string
} {
	mock.lockGetMany.RLock()
	calls := mock.calls.GetMany
	mock.lockGetMany.RUnlock()
	return calls
}

func (mock *nameCacheMock) SetMany(ctx context.Context, kind string, names map[string]string) error {
	if mock.SetManyFunc == nil {
		panic("nameCacheMock.SetManyFunc: method is nil but nameCache.SetMany was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Kind  string
		Names map[string]string
	}{Ctx: ctx, Kind: kind, Names: names}
	mock.lockSetMany.Lock()
	mock.calls.SetMany = append(mock.calls.SetMany, callInfo)
	mock.lockSetMany.Unlock()
	return mock.SetManyFunc(ctx, kind, names)
}

func (mock *nameCacheMock) SetManyCalls() []struct {
	Ctx   context.Context
	Kind  string
	Names map[string]string
} {
	mock.lockSetMany.RLock()
	calls := mock.calls.SetMany
	mock.lockSetMany.RUnlock()
	return calls
}
