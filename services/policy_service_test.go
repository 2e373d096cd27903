package services

import (
	"testing"

	"consent-backend/models"
	"consent-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyPublish_DeactivatesPreviousVersion(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPolicyService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `consent_policies`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `consent_policies`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	policy := models.ConsentPolicy{
		Name:    "Cookie Banner Policy",
		Version: "2.0",
		Content: "updated terms",
	}
	err := svc.Publish(&policy)

	require.NoError(t, err)
	assert.Equal(t, models.PolicyTypeCookieBanner, policy.Type)
	assert.True(t, policy.IsActive)
	assert.NotEmpty(t, policy.ContentHash)
	assert.False(t, policy.EffectiveDate.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyPublish_RequiresName(t *testing.T) {
	_, db := setupMockDB(t)
	svc := NewPolicyService(db)

	err := svc.Publish(&models.ConsentPolicy{})

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidRequest, utils.AsAPIError(err).Code)
}

func TestPolicyLatestActive_NotFound(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPolicyService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_policies`").
		WillReturnRows(sqlmock.NewRows([]string{"policy_id", "type", "version"}))

	_, err := svc.LatestActive(nil, models.PolicyTypeDPA)

	require.Error(t, err)
	assert.Equal(t, utils.CodePolicyNotFound, utils.AsAPIError(err).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
