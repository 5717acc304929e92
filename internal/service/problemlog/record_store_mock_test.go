package problemlog

import (
	"context"
	"sync"
)

var _ recordStore = &recordStoreMock{}

type recordStoreMock struct {
	LoadFunc func(ctx context.Context, name string) ([]byte, error)
	SaveFunc func(ctx context.Context, name string, data []byte) error

	calls struct {
		Load []struct {
			Ctx  context.Context
			Name string
		}
		Save []struct {
			Ctx  context.Context
			Name string
			Data []byte
		}
	}
	lockLoad sync.RWMutex
	lockSave sync.RWMutex
}

func (mock *recordStoreMock) Load(ctx context.Context, name string) ([]byte, error) {
	if mock.LoadFunc == nil {
		panic("recordStoreMock.LoadFunc: method is nil but recordStore.Load was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, name)
}

func (mock *recordStoreMock) LoadCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *recordStoreMock) Save(ctx context.Context, name string, data []byte) error {
	if mock.SaveFunc == nil {
		panic("recordStoreMock.SaveFunc: method is nil but recordStore.Save was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
		Data []byte
	}{Ctx: ctx, Name: name, Data: data}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, name, data)
}

func (mock *recordStoreMock) SaveCalls() []struct {
	Ctx  context.Context
	Name string
	Data []byte
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
