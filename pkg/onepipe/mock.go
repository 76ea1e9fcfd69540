package onepipe

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is the recording stand-in for sandbox runs and tests. It is
// wired in at composition time (ONEPIPE_MOCK_MODE); nothing in the services
// knows which client it talks to.
type MockClient struct {
	mu      sync.Mutex
	counter int

	// Overrides for failure injection. Zero values mean the happy path.
	VerifyErr    error
	OpenErr      error
	Linked       bool
	AccountName  string
	MandateState string

	OpenedMandates []OpenMandateParams
	Verifications  []VerifyOwnershipParams
}

func NewMockClient() *MockClient {
	return &MockClient{
		Linked:       true,
		AccountName:  "MOCK ACCOUNT HOLDER",
		MandateState: "active",
	}
}

func (m *MockClient) VerifyAccountOwnership(_ context.Context, p VerifyOwnershipParams) (*OwnershipResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	m.Verifications = append(m.Verifications, p)
	return &OwnershipResult{Linked: m.Linked, AccountName: m.AccountName}, nil
}

func (m *MockClient) OpenMandateOrInvoice(_ context.Context, p OpenMandateParams) (*MandateHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.counter++
	m.OpenedMandates = append(m.OpenedMandates, p)

	virtual := fmt.Sprintf("99%08d", m.counter)
	return &MandateHandle{
		ExternalID:     fmt.Sprintf("MOCK_MANDATE_%s_%d", p.OrderID, m.counter),
		VirtualAccount: &virtual,
	}, nil
}

func (m *MockClient) QueryMandateStatus(_ context.Context, externalID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.MandateState, nil
}

func (m *MockClient) ListBanks(_ context.Context) ([]Bank, error) {
	return []Bank{
		{Code: "058", Name: "GTBank"},
		{Code: "044", Name: "Access Bank"},
		{Code: "057", Name: "Zenith Bank"},
	}, nil
}
