package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectFindOrCreate_ReturnsExisting(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewSubjectService(db)

	mock.ExpectQuery("SELECT (.+) FROM `subjects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id"}).AddRow(1, "sub-1"))

	subject, err := svc.FindOrCreate(nil, "sub-1", "", "")

	require.NoError(t, err)
	assert.Equal(t, "sub-1", subject.SubjectID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectFindOrCreate_UnknownHandleGetsFreshSubject(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewSubjectService(db)

	mock.ExpectQuery("SELECT (.+) FROM `subjects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subjects`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	subject, err := svc.FindOrCreate(nil, "sub-typo", "", "203.0.113.7")

	require.NoError(t, err)
	// the supplied handle is not adopted; the caller sees the new one
	assert.NotEqual(t, "sub-typo", subject.SubjectID)
	_, uuidErr := uuid.Parse(subject.SubjectID)
	assert.NoError(t, uuidErr)
	assert.False(t, subject.IsIdentified)

	assert.NoError(t, mock.ExpectationsWereMet())
}
