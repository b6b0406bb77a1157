package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/use-of-force/internal/adapter/provider/prison"
)

var _ upstream = &upstreamMock{}

type upstreamMock struct {
	GetLocationNameFunc func(ctx context.Context, token string, locationID string) (string, error)
	ListPrisonsFunc     func(ctx context.Context, token string) ([]prison.Prison, error)

	calls struct {
		GetLocationName []struct {
			Ctx        context.Context
			Token      string
			LocationID string
		}
		ListPrisons []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockGetLocationName sync.RWMutex
	lockListPrisons     sync.RWMutex
}

func (mock *upstreamMock) GetLocationName(ctx context.Context, token string, locationID string) (string, error) {
	if mock.GetLocationNameFunc == nil {
		panic("upstreamMock.GetLocationNameFunc: method is nil but upstream.GetLocationName was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Token      string
		LocationID string
	}{Ctx: ctx, Token: token, LocationID: locationID}
	mock.lockGetLocationName.Lock()
	mock.calls.GetLocationName = append(mock.calls.GetLocationName, callInfo)
	mock.lockGetLocationName.Unlock()
	return mock.GetLocationNameFunc(ctx, token, locationID)
}

func (mock *upstreamMock) GetLocationNameCalls() []struct {
	Ctx        context.Context
	Token      string
	LocationID string
} {
	mock.lockGetLocationName.RLock()
	calls := mock.calls.GetLocationName
	mock.lockGetLocationName.RUnlock()
	return calls
}

func (mock *upstreamMock) ListPrisons(ctx context.Context, token string) ([]prison.Prison, error) {
	if mock.ListPrisonsFunc == nil {
		panic("upstreamMock.ListPrisonsFunc: method is nil but upstream.ListPrisons was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockListPrisons.Lock()
	mock.calls.ListPrisons = append(mock.calls.ListPrisons, callInfo)
	mock.lockListPrisons.Unlock()
	return mock.ListPrisonsFunc(ctx, token)
}

func (mock *upstreamMock) ListPrisonsCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockListPrisons.RLock()
	calls := mock.calls.ListPrisons
	mock.lockListPrisons.RUnlock()
	return calls
}
