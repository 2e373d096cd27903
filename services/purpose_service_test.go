package services

import (
	"testing"

	"consent-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurposeFindByCodes_UnknownCode(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "is_active"}).
			AddRow(3, "analytics", true))

	_, err := svc.FindByCodes(nil, []string{"analytics", "bogus"})

	require.Error(t, err)
	apiErr := utils.AsAPIError(err)
	assert.Equal(t, utils.CodePurposeNotFound, apiErr.Code)
	assert.Equal(t, []string{"bogus"}, apiErr.Meta["codes"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurposeFindByCodes_NormalizesCase(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WithArgs("analytics", true).
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "is_active"}).
			AddRow(3, "analytics", true))

	purposes, err := svc.FindByCodes(nil, []string{" Analytics "})

	require.NoError(t, err)
	require.Len(t, purposes, 1)
	assert.Equal(t, "analytics", purposes[0].Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurposeFindByCodes_DeduplicatesCodes(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WithArgs("analytics", true).
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "is_active"}).
			AddRow(3, "analytics", true))

	purposes, err := svc.FindByCodes(nil, []string{"analytics", "Analytics", "analytics"})

	require.NoError(t, err)
	require.Len(t, purposes, 1)
	assert.Equal(t, "analytics", purposes[0].Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurposeFindByCodes_BlankCodesRejected(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	_, err := svc.FindByCodes(nil, []string{"  ", ""})

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidRequest, utils.AsAPIError(err).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurposeDelete_EssentialIsProtected(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "is_essential"}).
			AddRow(1, "necessary", true))

	err := svc.Delete("necessary")

	require.Error(t, err)
	assert.Equal(t, utils.CodePurposeInUse, utils.AsAPIError(err).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurposeDelete_SoftDeletes(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewPurposeService(db)

	mock.ExpectQuery("SELECT (.+) FROM `consent_purposes`").
		WillReturnRows(sqlmock.NewRows([]string{"purpose_id", "code", "is_essential"}).
			AddRow(4, "marketing", false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `consent_purposes` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete("marketing")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
