package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/use-of-force/internal/domain"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
)

var _ editService = &editServiceMock{}

type editServiceMock struct {
	BuildEditHistoryFunc func(ctx context.Context, reportID int64, lc edit.LookupContext) ([]edit.HistoryRow, error)
	CommitEditFunc       func(ctx context.Context, input edit.CommitEditInput) (*domain.ReportEdit, error)
	PreviewEditFunc      func(ctx context.Context, reportID int64, section domain.Section, payload map[string]any, lc edit.LookupContext) (*edit.Preview, error)
	ReassignOwnerFunc    func(ctx context.Context, input edit.ReassignOwnerInput) (*domain.ReportEdit, error)

	calls struct {
		BuildEditHistory []struct {
			Ctx      context.Context
			ReportID int64
			Lc       edit.LookupContext
		}
		CommitEdit []struct {
			Ctx   context.Context
			Input edit.CommitEditInput
		}
		PreviewEdit []struct {
			Ctx      context.Context
			ReportID int64
			Section  domain.Section
			Payload  map[string]any
			Lc       edit.LookupContext
		}
		ReassignOwner []struct {
			Ctx   context.Context
			Input edit.ReassignOwnerInput
		}
	}
	lockBuildEditHistory sync.RWMutex
	lockCommitEdit       sync.RWMutex
	lockPreviewEdit      sync.RWMutex
	lockReassignOwner    sync.RWMutex
}

func (mock *editServiceMock) BuildEditHistory(ctx context.Context, reportID int64, lc edit.LookupContext) ([]edit.HistoryRow, error) {
	if mock.BuildEditHistoryFunc == nil {
		panic("editServiceMock.BuildEditHistoryFunc: method is nil but editService.BuildEditHistory was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ReportID int64
		Lc       edit.LookupContext
	}{Ctx: ctx, ReportID: reportID, Lc: lc}
	mock.lockBuildEditHistory.Lock()
	mock.calls.BuildEditHistory = append(mock.calls.BuildEditHistory, callInfo)
	mock.lockBuildEditHistory.Unlock()
	return mock.BuildEditHistoryFunc(ctx, reportID, lc)
}

func (mock *editServiceMock) BuildEditHistoryCalls() []struct {
	Ctx      context.Context
	ReportID int64
	Lc       edit.LookupContext
} {
	mock.lockBuildEditHistory.RLock()
	calls := mock.calls.BuildEditHistory
	mock.lockBuildEditHistory.RUnlock()
	return calls
}

func (mock *editServiceMock) CommitEdit(ctx context.Context, input edit.CommitEditInput) (*domain.ReportEdit, error) {
	if mock.CommitEditFunc == nil {
		panic("editServiceMock.CommitEditFunc: method is nil but editService.CommitEdit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input edit.CommitEditInput
	}{Ctx: ctx, Input: input}
	mock.lockCommitEdit.Lock()
	mock.calls.CommitEdit = append(mock.calls.CommitEdit, callInfo)
	mock.lockCommitEdit.Unlock()
	return mock.CommitEditFunc(ctx, input)
}

func (mock *editServiceMock) CommitEditCalls() []struct {
	Ctx   context.Context
	Input edit.CommitEditInput
} {
	mock.lockCommitEdit.RLock()
	calls := mock.calls.CommitEdit
	mock.lockCommitEdit.RUnlock()
	return calls
}

func (mock *editServiceMock) PreviewEdit(ctx context.Context, reportID int64, section domain.Section, payload map[string]any, lc edit.LookupContext) (*edit.Preview, error) {
	if mock.PreviewEditFunc == nil {
		panic("editServiceMock.PreviewEditFunc: method is nil but editService.PreviewEdit was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ReportID int64
		Section  domain.Section
		Payload  map[string]any
		Lc       edit.LookupContext
	}{Ctx: ctx, ReportID: reportID, Section: section, Payload: payload, Lc: lc}
	mock.lockPreviewEdit.Lock()
	mock.calls.PreviewEdit = append(mock.calls.PreviewEdit, callInfo)
	mock.lockPreviewEdit.Unlock()
	return mock.PreviewEditFunc(ctx, reportID, section, payload, lc)
}

func (mock *editServiceMock) PreviewEditCalls() []struct {
	Ctx      context.Context
	ReportID int64
	Section  domain.Section
	Payload  map[string]any
	Lc       edit.LookupContext
} {
	mock.lockPreviewEdit.RLock()
	calls := mock.calls.PreviewEdit
	mock.lockPreviewEdit.RUnlock()
	return calls
}

func (mock *editServiceMock) ReassignOwner(ctx context.Context, input edit.ReassignOwnerInput) (*domain.ReportEdit, error) {
	if mock.ReassignOwnerFunc == nil {
		panic("editServiceMock.ReassignOwnerFunc: method is nil but editService.ReassignOwner was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input edit.ReassignOwnerInput
	}{Ctx: ctx, Input: input}
	mock.lockReassignOwner.Lock()
	mock.calls.ReassignOwner = append(mock.calls.ReassignOwner, callInfo)
	mock.lockReassignOwner.Unlock()
	return mock.ReassignOwnerFunc(ctx, input)
}

func (mock *editServiceMock) ReassignOwnerCalls() []struct {
	Ctx   context.Context
	Input edit.ReassignOwnerInput
} {
	mock.lockReassignOwner.RLock()
	calls := mock.calls.ReassignOwner
	mock.lockReassignOwner.RUnlock()
	return calls
}
