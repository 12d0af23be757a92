package services

import (
	"strings"
	"testing"

	"affiliate-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAffiliateIdempotentPerUser(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)

	first, err := svc.CreateAffiliate(3001, models.TierSilver)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ReferralCode)
	assert.Equal(t, models.AffiliateActive, first.Status)

	// Tier on a repeat call is ignored; the original record wins.
	second, err := svc.CreateAffiliate(3001, models.TierPlatinum)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ReferralCode, second.ReferralCode)
	assert.Equal(t, models.TierSilver, second.PackageTier)
}

func TestRegisterReferralLinksParent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	referrer := seedAffiliate(t, 3101, models.TierGold, nil)
	newcomer := seedAffiliate(t, 3102, models.TierSilver, nil)

	referral, err := svc.RegisterReferral(newcomer.ID, referrer.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, referral)
	assert.Equal(t, referrer.ID, referral.AffiliateId)
	assert.Equal(t, newcomer.ID, referral.ReferredAffiliateId)
	assert.Zero(t, referral.CommissionEarned)

	linked := reloadAffiliate(t, newcomer.ID)
	require.NotNil(t, linked.ParentId)
	assert.Equal(t, referrer.ID, *linked.ParentId)
}

func TestRegisterReferralUnknownCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	newcomer := seedAffiliate(t, 3201, models.TierSilver, nil)

	referral, err := svc.RegisterReferral(newcomer.ID, "REFNOSUCH1")
	require.NoError(t, err)
	assert.Nil(t, referral)
	assert.Nil(t, reloadAffiliate(t, newcomer.ID).ParentId)
}

func TestRegisterReferralNoCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	newcomer := seedAffiliate(t, 3301, models.TierSilver, nil)

	referral, err := svc.RegisterReferral(newcomer.ID, "")
	require.NoError(t, err)
	assert.Nil(t, referral)
}

func TestRegisterReferralMalformedCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	newcomer := seedAffiliate(t, 3401, models.TierSilver, nil)

	_, err := svc.RegisterReferral(newcomer.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidReferralCode)
}

func TestRegisterReferralSuspendedReferrer(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	referrer := seedAffiliate(t, 3501, models.TierGold, nil)
	require.NoError(t, testDB.Model(&models.Affiliate{}).
		Where("id = ?", referrer.ID).
		UpdateColumn("status", models.AffiliateSuspended).Error)
	newcomer := seedAffiliate(t, 3502, models.TierSilver, nil)

	referral, err := svc.RegisterReferral(newcomer.ID, referrer.ReferralCode)
	require.NoError(t, err)
	assert.Nil(t, referral)
	assert.Nil(t, reloadAffiliate(t, newcomer.ID).ParentId)
}

func TestRegisterReferralSelfReference(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	affiliate := seedAffiliate(t, 3601, models.TierGold, nil)

	referral, err := svc.RegisterReferral(affiliate.ID, affiliate.ReferralCode)
	require.NoError(t, err)
	assert.Nil(t, referral)
	assert.Nil(t, reloadAffiliate(t, affiliate.ID).ParentId)
}

func TestRegisterReferralParentImmutable(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	referrer := seedAffiliate(t, 3701, models.TierGold, nil)
	other := seedAffiliate(t, 3702, models.TierPlatinum, nil)
	newcomer := seedAffiliate(t, 3703, models.TierSilver, nil)

	first, err := svc.RegisterReferral(newcomer.ID, referrer.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, first)

	// A second registration, even with a different code, does not re-link.
	second, err := svc.RegisterReferral(newcomer.ID, other.ReferralCode)
	require.NoError(t, err)
	assert.Nil(t, second)

	linked := reloadAffiliate(t, newcomer.ID)
	require.NotNil(t, linked.ParentId)
	assert.Equal(t, referrer.ID, *linked.ParentId)

	// Replaying the original code returns the existing edge.
	replayed, err := svc.RegisterReferral(newcomer.ID, referrer.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, replayed)
	assert.Equal(t, first.ID, replayed.ID)

	var count int64
	testDB.Model(&models.Referral{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterReferralLowercaseCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReferralService(testDB)
	referrer := seedAffiliate(t, 3801, models.TierGold, nil)
	newcomer := seedAffiliate(t, 3802, models.TierSilver, nil)

	referral, err := svc.RegisterReferral(newcomer.ID, "  "+strings.ToLower(referrer.ReferralCode)+" ")
	require.NoError(t, err)
	require.NotNil(t, referral)
	assert.Equal(t, referrer.ID, referral.AffiliateId)
}
