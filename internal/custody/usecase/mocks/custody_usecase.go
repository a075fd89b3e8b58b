// Package mocks provides mock implementations of the custody use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
)

// MockCustodyUseCase is a mock implementation of CustodyUseCase for testing.
type MockCustodyUseCase struct {
	mock.Mock
}

// Append mocks the Append method of CustodyUseCase.
func (m *MockCustodyUseCase) Append(
	ctx context.Context,
	input *custodyDomain.AppendEventInput,
) (*custodyDomain.CustodyEvent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.CustodyEvent), args.Error(1)
}

// History mocks the History method of CustodyUseCase.
func (m *MockCustodyUseCase) History(
	ctx context.Context,
	evidenceID int64,
	order custodyDomain.SortOrder,
) ([]*custodyDomain.CustodyEvent, error) {
	args := m.Called(ctx, evidenceID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*custodyDomain.CustodyEvent), args.Error(1)
}

// VerifyChain mocks the VerifyChain method of CustodyUseCase.
func (m *MockCustodyUseCase) VerifyChain(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.ChainVerification, error) {
	args := m.Called(ctx, evidenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.ChainVerification), args.Error(1)
}

// VerifyIntegrity mocks the VerifyIntegrity method of CustodyUseCase.
func (m *MockCustodyUseCase) VerifyIntegrity(
	ctx context.Context,
	evidenceID int64,
	currentHash string,
) (*custodyDomain.IntegrityResult, error) {
	args := m.Called(ctx, evidenceID, currentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.IntegrityResult), args.Error(1)
}

// VerifyAll mocks the VerifyAll method of CustodyUseCase.
func (m *MockCustodyUseCase) VerifyAll(ctx context.Context) (*custodyDomain.VerificationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.VerificationReport), args.Error(1)
}
