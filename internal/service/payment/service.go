// Package payment holds the two writers of an account's ledger: the
// transfer engine and the deposit engine. Both validate first and commit
// through a single ledger append, so a failed call leaves balance and log
// untouched.
package payment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zeus-fintech/zeus-api/internal/config"
	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

const (
	transferRefPrefix = "TXN"
	depositRefPrefix  = "DEP"
)

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

func requireVerified(acct *store.Account) error {
	if acct.Session.Stage() != domain.StageFullyVerified {
		return domain.ErrNotVerified
	}
	return nil
}

// newReference builds a display token like TXN-9F3A21BC. Deriving the
// suffix from a uuid instead of the wall clock keeps tokens unique under
// rapid submission.
func newReference(prefix string) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, hex[:8])
}
