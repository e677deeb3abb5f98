package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
)

func chartOfAccounts() []Account {
	return []Account{
		{AccountID: "assets", Code: "1000", IsParent: true},
		{AccountID: "cash", Code: "1100", ParentAccountID: "assets", IsParent: true},
		{AccountID: "cash-idr", Code: "1101", ParentAccountID: "cash"},
		{AccountID: "cash-usd", Code: "1102", ParentAccountID: "cash"},
		{AccountID: "receivables", Code: "1200", ParentAccountID: "assets"},
		{AccountID: "revenue", Code: "4000"},
	}
}

func TestDescendantIDs_IncludesSelf(t *testing.T) {
	tree := NewAccountTree(chartOfAccounts())

	ids, err := tree.DescendantIDs("revenue")
	require.NoError(t, err)
	assert.Equal(t, []string{"revenue"}, ids)
}

func TestDescendantIDs_MultiLevel(t *testing.T) {
	tree := NewAccountTree(chartOfAccounts())

	ids, err := tree.DescendantIDs("assets")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"assets", "cash", "cash-idr", "cash-usd", "receivables"}, ids)

	ids, err = tree.DescendantIDs("cash")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cash", "cash-idr", "cash-usd"}, ids)
}

func TestDescendantIDs_CycleDetected(t *testing.T) {
	accounts := []Account{
		{AccountID: "a", ParentAccountID: "b"},
		{AccountID: "b", ParentAccountID: "a"},
	}
	tree := NewAccountTree(accounts)

	_, err := tree.DescendantIDs("a")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountHierarchyCycle)
}

func TestWouldCreateCycle(t *testing.T) {
	tree := NewAccountTree(chartOfAccounts())

	assert.True(t, tree.WouldCreateCycle("cash", "cash"), "self-parenting is a cycle")
	assert.True(t, tree.WouldCreateCycle("assets", "cash-idr"), "re-parenting under a descendant is a cycle")
	assert.True(t, tree.WouldCreateCycle("cash", "cash-usd"))
	assert.False(t, tree.WouldCreateCycle("receivables", "cash"), "moving to a sibling subtree is fine")
	assert.False(t, tree.WouldCreateCycle("revenue", "assets"))
	assert.False(t, tree.WouldCreateCycle("cash", ""), "clearing the parent is always safe")
}

func TestAccountTree_Get(t *testing.T) {
	tree := NewAccountTree(chartOfAccounts())

	acc, ok := tree.Get("cash-idr")
	require.True(t, ok)
	assert.Equal(t, "1101", acc.Code)

	_, ok = tree.Get("missing")
	assert.False(t, ok)
}
