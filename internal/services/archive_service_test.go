package services

import (
	"testing"
	"time"

	"affiliate-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveTransactionsMovesOldSettledRows(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewTransactionArchiveService(testDB)

	old := models.Transaction{
		UserId:        5001,
		AffiliateId:   1,
		TransactionNo: "TX-OLD-1",
		Amount:        1000,
		TrxType:       "credit",
		Subject:       "Direct Commission",
		Status:        1,
	}
	require.NoError(t, testDB.Create(&old).Error)
	require.NoError(t, testDB.Model(&models.Transaction{}).
		Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().AddDate(0, 0, -120)).Error)

	recent := models.Transaction{
		UserId:        5001,
		AffiliateId:   1,
		TransactionNo: "TX-NEW-1",
		Amount:        500,
		TrxType:       "credit",
		Subject:       "Direct Commission",
		Status:        1,
	}
	require.NoError(t, testDB.Create(&recent).Error)

	svc.ArchiveTransactions()

	var liveCount int64
	testDB.Model(&models.Transaction{}).Count(&liveCount)
	assert.Equal(t, int64(1), liveCount)

	var archived []models.ArchivedTransaction
	require.NoError(t, testDB.Find(&archived).Error)
	require.Len(t, archived, 1)
	assert.Equal(t, "TX-OLD-1", archived[0].TransactionNo)
	assert.Equal(t, 1000.0, archived[0].Amount)
}
