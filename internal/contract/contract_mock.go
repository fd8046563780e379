package contract

import (
	"context"

	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	calledArgs := []any{ctx, repoPath}
	for _, a := range args {
		calledArgs = append(calledArgs, a)
	}
	ret := m.Called(calledArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// MockUpdateInquirer is a mock implementation of UpdateInquirer for testing.
type MockUpdateInquirer struct {
	mock.Mock
}

var _ UpdateInquirer = &MockUpdateInquirer{} // Compile-time check

// UpdateData implements the UpdateInquirer interface.
func (m *MockUpdateInquirer) UpdateData(ctx context.Context) (schema.UpdateData, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(schema.UpdateData), ret.Error(1)
}

// PreferredCoreUpdate implements the UpdateInquirer interface.
func (m *MockUpdateInquirer) PreferredCoreUpdate(ctx context.Context) (*schema.CoreUpdate, error) {
	ret := m.Called(ctx)
	cur, _ := ret.Get(0).(*schema.CoreUpdate)
	return cur, ret.Error(1)
}

// MockVCSProbe is a mock implementation of VCSProbe for testing.
type MockVCSProbe struct {
	mock.Mock
}

var _ VCSProbe = &MockVCSProbe{} // Compile-time check

// IsVCSCheckout implements the VCSProbe interface.
func (m *MockVCSProbe) IsVCSCheckout(ctx context.Context, dir string) (bool, error) {
	ret := m.Called(ctx, dir)
	return ret.Bool(0), ret.Error(1)
}

// MockSiteContext is a mock implementation of SiteContext for testing.
type MockSiteContext struct {
	mock.Mock
}

var _ SiteContext = &MockSiteContext{} // Compile-time check

// IsPrimarySite implements the SiteContext interface.
func (m *MockSiteContext) IsPrimarySite() bool {
	return m.Called().Bool(0)
}
