package domain

import (
	"fmt"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
)

// AccountTree is a flat index over a chart of accounts providing descendant
// resolution without recursive lookups. Build it once per request from the
// full account list of a company.
type AccountTree struct {
	byID             map[string]Account
	childrenByParent map[string][]string
}

// NewAccountTree indexes accounts by ID and parent adjacency.
func NewAccountTree(accounts []Account) *AccountTree {
	t := &AccountTree{
		byID:             make(map[string]Account, len(accounts)),
		childrenByParent: make(map[string][]string),
	}
	for _, acc := range accounts {
		t.byID[acc.AccountID] = acc
		if acc.ParentAccountID != "" {
			t.childrenByParent[acc.ParentAccountID] = append(t.childrenByParent[acc.ParentAccountID], acc.AccountID)
		}
	}
	return t
}

// Get returns the account with the given ID, if indexed.
func (t *AccountTree) Get(accountID string) (Account, bool) {
	acc, ok := t.byID[accountID]
	return acc, ok
}

// Children returns the direct child IDs of the given account.
func (t *AccountTree) Children(accountID string) []string {
	return t.childrenByParent[accountID]
}

// DescendantIDs returns the given account plus every account transitively
// reachable through parent links. A well-formed chart of accounts has no
// cycles; if one is found the tree is corrupt and we fail fast rather than
// loop forever.
func (t *AccountTree) DescendantIDs(accountID string) ([]string, error) {
	visited := make(map[string]struct{})
	result := make([]string, 0, 8)
	queue := []string{accountID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, seen := visited[current]; seen {
			return nil, fmt.Errorf("%w: account %s reachable twice from %s", apperrors.ErrAccountHierarchyCycle, current, accountID)
		}
		visited[current] = struct{}{}
		result = append(result, current)
		queue = append(queue, t.childrenByParent[current]...)
	}
	return result, nil
}

// WouldCreateCycle reports whether re-parenting accountID under newParentID
// would introduce a cycle. Used at write time, before the parent link changes.
func (t *AccountTree) WouldCreateCycle(accountID, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	if accountID == newParentID {
		return true
	}
	// Walk up from the proposed parent; hitting accountID means accountID is
	// an ancestor of newParentID.
	current := newParentID
	steps := 0
	for current != "" {
		if current == accountID {
			return true
		}
		acc, ok := t.byID[current]
		if !ok {
			return false
		}
		current = acc.ParentAccountID
		steps++
		if steps > len(t.byID) {
			// Existing data already loops; treat as a cycle.
			return true
		}
	}
	return false
}
