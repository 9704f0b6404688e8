package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cx-tal-miterani/fare-workflow/internal/availability"
	"github.com/cx-tal-miterani/fare-workflow/internal/confirm"
	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// MockAvailabilityClient is a mock implementation of availability.Client
type MockAvailabilityClient struct {
	mock.Mock
}

func (m *MockAvailabilityClient) Search(ctx context.Context, req model.SearchRequest, usePoints bool) (*model.AvailabilityData, error) {
	args := m.Called(ctx, req, usePoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AvailabilityData), args.Error(1)
}

func (m *MockAvailabilityClient) SearchLowFare(ctx context.Context, req model.LowFareSearchRequest) (*model.LowFareData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LowFareData), args.Error(1)
}

func (m *MockAvailabilityClient) SellTrip(ctx context.Context, req availability.SellRequest) (*model.SellResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SellResponse), args.Error(1)
}

func (m *MockAvailabilityClient) ModifySellTrip(ctx context.Context, req availability.ModifySellRequest) (*model.ModifySellResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ModifySellResponse), args.Error(1)
}

func (m *MockAvailabilityClient) RedemptionFee(ctx context.Context, departure time.Time, loyaltyKind, tierCode string) (float64, error) {
	args := m.Called(ctx, departure, loyaltyKind, tierCode)
	return args.Get(0).(float64), args.Error(1)
}

// MockConfirmHost is a mock implementation of confirm.Host
type MockConfirmHost struct {
	mock.Mock
}

func (m *MockConfirmHost) Open(ctx context.Context, dialog confirm.Dialog, opts confirm.Options) (<-chan confirm.Response, error) {
	args := m.Called(ctx, dialog, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan confirm.Response), args.Error(1)
}

// Respond builds a one-shot response channel for MockConfirmHost returns.
func Respond(resp confirm.Response) <-chan confirm.Response {
	ch := make(chan confirm.Response, 1)
	ch <- resp
	close(ch)
	return ch
}

// Dismiss builds a closed response channel, the dismissed-dialog shape.
func Dismiss() <-chan confirm.Response {
	ch := make(chan confirm.Response)
	close(ch)
	return ch
}
