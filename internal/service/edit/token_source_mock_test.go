package edit

import (
	"context"
	"sync"
)

var _ TokenSource = &tokenSourceMock{}

type tokenSourceMock struct {
	SystemTokenFunc func(ctx context.Context, username string) (string, error)

	calls struct {
		SystemToken []struct {
			Ctx      context.Context
			Username string
		}
	}
	lockSystemToken sync.RWMutex
}

func (mock *tokenSourceMock) SystemToken(ctx context.Context, username string) (string, error) {
	if mock.SystemTokenFunc == nil {
		panic("tokenSourceMock.SystemTokenFunc: method is nil but TokenSource.SystemToken was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Username string
	}{Ctx: ctx, Username: username}
	mock.lockSystemToken.Lock()
	mock.calls.SystemToken = append(mock.calls.SystemToken, callInfo)
	mock.lockSystemToken.Unlock()
	return mock.SystemTokenFunc(ctx, username)
}

func (mock *tokenSourceMock) SystemTokenCalls() []struct {
	Ctx      context.Context
	Username string
} {
	mock.lockSystemToken.RLock()
	calls := mock.calls.SystemToken
	mock.lockSystemToken.RUnlock()
	return calls
}
