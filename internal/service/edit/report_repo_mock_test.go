package edit

import (
	"context"
	"sync"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

var _ reportRepo = &reportRepoMock{}

type reportRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id int64) (*domain.Report, error)
	ApplySectionUpdateFunc func(ctx context.Context, id int64, section domain.Section, values map[string]any) error
	ChangeOwnerFunc        func(ctx context.Context, id int64, username string, reporterName string) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		ApplySectionUpdate []struct {
			Ctx     context.Context
			ID      int64
			Section domain.Section
			Values  map[string]any
		}
		ChangeOwner []struct {
			Ctx          context.Context
			ID           int64
			Username     string
			ReporterName string
		}
	}
	lockGetByID            sync.RWMutex
	lockApplySectionUpdate sync.RWMutex
	lockChangeOwner        sync.RWMutex
}

func (mock *reportRepoMock) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	if mock.GetByIDFunc == nil {
		panic("reportRepoMock.GetByIDFunc: method is nil but reportRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *reportRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *reportRepoMock) ApplySectionUpdate(ctx context.Context, id int64, section domain.Section, values map[string]any) error {
	if mock.ApplySectionUpdateFunc == nil {
		panic("reportRepoMock.ApplySectionUpdateFunc: method is nil but reportRepo.ApplySectionUpdate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      int64
		Section domain.Section
		Values  map[string]any
	}{Ctx: ctx, ID: id, Section: section, Values: values}
	mock.lockApplySectionUpdate.Lock()
	mock.calls.ApplySectionUpdate = append(mock.calls.ApplySectionUpdate, callInfo)
	mock.lockApplySectionUpdate.Unlock()
	return mock.ApplySectionUpdateFunc(ctx, id, section, values)
}

func (mock *reportRepoMock) ApplySectionUpdateCalls() []struct {
	Ctx     context.Context
	ID      int64
	Section domain.Section
	Values  map[string]any
} {
	mock.lockApplySectionUpdate.RLock()
	calls := mock.calls.ApplySectionUpdate
	mock.lockApplySectionUpdate.RUnlock()
	return calls
}

func (mock *reportRepoMock) ChangeOwner(ctx context.Context, id int64, username string, reporterName string) error {
	if mock.ChangeOwnerFunc == nil {
		panic("reportRepoMock.ChangeOwnerFunc: method is nil but reportRepo.ChangeOwner was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		ID           int64
		Username     string
		ReporterName string
	}{Ctx: ctx, ID: id, Username: username, ReporterName: reporterName}
	mock.lockChangeOwner.Lock()
	mock.calls.ChangeOwner = append(mock.calls.ChangeOwner, callInfo)
	mock.lockChangeOwner.Unlock()
	return mock.ChangeOwnerFunc(ctx, id, username, reporterName)
}

func (mock *reportRepoMock) ChangeOwnerCalls() []struct {
	Ctx          context.Context
	ID           int64
	Username     string
	ReporterName string
} {
	mock.lockChangeOwner.RLock()
	calls := mock.calls.ChangeOwner
	mock.lockChangeOwner.RUnlock()
	return calls
}
