package session

import (
	"context"
	"sync"

	"github.com/heartmarshall/studytrack/internal/service/study"
)

var _ reviewer = &reviewerMock{}

type reviewerMock struct {
	RecordReviewFunc func(ctx context.Context, input study.ReviewCardInput) (study.ReviewResult, error)

	calls struct {
		RecordReview []struct {
			Ctx   context.Context
			Input study.ReviewCardInput
		}
	}
	lockRecordReview sync.RWMutex
}

func (mock *reviewerMock) RecordReview(ctx context.Context, input study.ReviewCardInput) (study.ReviewResult, error) {
	if mock.RecordReviewFunc == nil {
		panic("reviewerMock.RecordReviewFunc: method is nil but reviewer.RecordReview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input study.ReviewCardInput
	}{Ctx: ctx, Input: input}
	mock.lockRecordReview.Lock()
	mock.calls.RecordReview = append(mock.calls.RecordReview, callInfo)
	mock.lockRecordReview.Unlock()
	return mock.RecordReviewFunc(ctx, input)
}

func (mock *reviewerMock) RecordReviewCalls() []struct {
	Ctx   context.Context
	Input study.ReviewCardInput
} {
	mock.lockRecordReview.RLock()
	calls := mock.calls.RecordReview
	mock.lockRecordReview.RUnlock()
	return calls
}
