package approval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/stretchr/testify/mock"
)

func TestZZDebugBulk(t *testing.T) {
	service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
	good := *pendingCompany(t)
	bad := *pendingCompany(t)
	fmt.Println("good.ID:", good.ID, "bad.ID:", bad.ID)

	companyRepo.On("FindPending", mock.Anything).Return([]identity.Company{good, bad}, nil)
	companyRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *identity.Company) bool {
		fmt.Println("matcher BAD vs", c.ID, "->", c.ID == bad.ID)
		return c.ID == bad.ID
	})).Return(errors.New("write quota exceeded"))
	companyRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *identity.Company) bool {
		fmt.Println("matcher GOOD vs", c.ID, "->", c.ID == good.ID)
		return c.ID == good.ID
	})).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	result, err := service.ApproveAllPending(context.Background(), "admin@chatforge.io")
	fmt.Printf("result=%+v err=%v\n", result, err)
}
