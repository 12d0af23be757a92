package services

import (
	"testing"

	"affiliate-service/internal/models"
	"affiliate-service/internal/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewHierarchyService(testDB)
	root := seedAffiliate(t, 4001, models.TierSilver, nil)

	parent, grandparent, err := svc.Resolve(root.ID)
	require.NoError(t, err)
	assert.Nil(t, parent)
	assert.Nil(t, grandparent)
}

func TestResolveStopsAtTwoHops(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewHierarchyService(testDB)
	great := seedAffiliate(t, 4101, models.TierPlatinum, nil)
	grand := seedAffiliate(t, 4102, models.TierGold, &great.ID)
	mid := seedAffiliate(t, 4103, models.TierGold, &grand.ID)
	leaf := seedAffiliate(t, 4104, models.TierSilver, &mid.ID)

	parent, grandparent, err := svc.Resolve(leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, parent)
	require.NotNil(t, grandparent)
	assert.Equal(t, mid.ID, parent.ID)
	assert.Equal(t, grand.ID, grandparent.ID)
}

func TestResolveUnknownAffiliate(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewHierarchyService(testDB)
	_, _, err := svc.Resolve(999999)
	assert.ErrorIs(t, err, ErrUnknownAffiliate)
}

func TestResolveDanglingParent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewHierarchyService(testDB)
	missing := 888888
	orphan := seedAffiliate(t, 4201, models.TierSilver, &missing)

	parent, grandparent, err := svc.Resolve(orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, parent)
	assert.Nil(t, grandparent)
}

func TestGetHierarchyTwoGenerationsDown(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewHierarchyService(testDB)
	root := seedAffiliate(t, 4301, models.TierGold, nil)
	childA := seedAffiliate(t, 4302, models.TierSilver, &root.ID)
	childB := seedAffiliate(t, 4303, models.TierSilver, &root.ID)
	grandchild := seedAffiliate(t, 4304, models.TierSilver, &childA.ID)
	// A third generation below must not appear.
	seedAffiliate(t, 4305, models.TierSilver, &grandchild.ID)

	view, err := svc.GetHierarchy(root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, view.Affiliate.ID)
	assert.Nil(t, view.Parent)
	require.Len(t, view.Children, 2)
	assert.Contains(t, []int{view.Children[0].ID, view.Children[1].ID}, childB.ID)
	require.Len(t, view.Grandchildren, 1)
	assert.Equal(t, grandchild.ID, view.Grandchildren[0].ID)
}

func TestGetCommissionStats(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	ledger := newLedger(rates.Default())
	stats := NewStatsService(testDB)

	alice := seedAffiliate(t, 4401, models.TierSilver, nil)
	bob := seedAffiliate(t, 4402, models.TierGold, &alice.ID)
	carol := seedAffiliate(t, 4403, models.TierPlatinum, &bob.ID)
	seedReferralEdge(t, alice, bob)
	seedReferralEdge(t, bob, carol)

	_, err := ledger.ProcessPurchase("TX-STATS-1", carol.ID)
	require.NoError(t, err)

	bobStats, err := stats.GetCommissionStats(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2600.0, bobStats.TotalDirect)
	assert.Zero(t, bobStats.TotalIndirect)
	assert.Equal(t, 2600.0, bobStats.CurrentBalance)
	assert.Equal(t, int64(1), bobStats.TotalReferrals)

	aliceStats, err := stats.GetCommissionStats(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, aliceStats.TotalDirect)
	assert.Equal(t, 400.0, aliceStats.TotalIndirect)

	_, err = stats.GetCommissionStats(999999)
	assert.ErrorIs(t, err, ErrUnknownAffiliate)
}

func TestListCommissionsByLevel(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	ledger := newLedger(rates.Default())
	stats := NewStatsService(testDB)

	alice := seedAffiliate(t, 4501, models.TierSilver, nil)
	bob := seedAffiliate(t, 4502, models.TierGold, &alice.ID)
	carol := seedAffiliate(t, 4503, models.TierPlatinum, &bob.ID)
	seedReferralEdge(t, alice, bob)
	seedReferralEdge(t, bob, carol)

	_, err := ledger.ProcessPurchase("TX-LIST-1", carol.ID)
	require.NoError(t, err)
	_, err = ledger.ProcessPurchase("TX-LIST-2", bob.ID)
	require.NoError(t, err)

	page, err := stats.ListCommissions(ListCommissionsDTO{AffiliateId: alice.ID, Level: models.LevelIndirect})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)

	page, err = stats.ListCommissions(ListCommissionsDTO{AffiliateId: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
}
