package answer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/citation-cli/internal/llm"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*llm.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerator) Name() string {
	return "mock"
}
