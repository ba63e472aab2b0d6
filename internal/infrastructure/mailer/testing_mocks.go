//go:build unit
// +build unit

package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/mock"
)

// MockEmailAPI is a mock implementation of EmailAPI
type MockEmailAPI struct {
	mock.Mock
}

func (m *MockEmailAPI) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}
