package edit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/use-of-force/internal/domain"
)

var _ editRepo = &editRepoMock{}

type editRepoMock struct {
	AppendFunc       func(ctx context.Context, edit *domain.ReportEdit) (uuid.UUID, error)
	ListByReportFunc func(ctx context.Context, reportID int64) ([]*domain.ReportEdit, error)

	calls struct {
		Append []struct {
			Ctx  context.Context
			Edit *domain.ReportEdit
		}
		ListByReport []struct {
			Ctx      context.Context
			ReportID int64
		}
	}
	lockAppend       sync.RWMutex
	lockListByReport sync.RWMutex
}

func (mock *editRepoMock) Append(ctx context.Context, edit *domain.ReportEdit) (uuid.UUID, error) {
	if mock.AppendFunc == nil {
		panic("editRepoMock.AppendFunc: method is nil but editRepo.Append was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Edit *domain.ReportEdit
	}{Ctx: ctx, Edit: edit}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, edit)
}

func (mock *editRepoMock) AppendCalls() []struct {
	Ctx  context.Context
	Edit *domain.ReportEdit
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *editRepoMock) ListByReport(ctx context.Context, reportID int64) ([]*domain.ReportEdit, error) {
	if mock.ListByReportFunc == nil {
		panic("editRepoMock.ListByReportFunc: method is nil but editRepo.ListByReport was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ReportID int64
	}{Ctx: ctx, ReportID: reportID}
	mock.lockListByReport.Lock()
	mock.calls.ListByReport = append(mock.calls.ListByReport, callInfo)
	mock.lockListByReport.Unlock()
	return mock.ListByReportFunc(ctx, reportID)
}

func (mock *editRepoMock) ListByReportCalls() []struct {
	Ctx      context.Context
	ReportID int64
} {
	mock.lockListByReport.RLock()
	calls := mock.calls.ListByReport
	mock.lockListByReport.RUnlock()
	return calls
}
