package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

const (
	hashA = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	hashB = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

var eventColumns = []string{
	"id", "evidence_id", "sequence", "evidence_type", "action_type", "handler", "location",
	"hash_before", "hash_after", "notes", "created_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func newEvent() *custodyDomain.CustodyEvent {
	hashBefore := hashA
	hashAfter := hashB
	return &custodyDomain.CustodyEvent{
		EvidenceID:   3,
		Sequence:     2,
		EvidenceType: evidenceDomain.EvidenceTypeFile,
		ActionType:   custodyDomain.ActionAnalysisCompleted,
		Handler:      "alice",
		Location:     "lab-1",
		HashBefore:   &hashBefore,
		HashAfter:    &hashAfter,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLCustodyEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)
		event := newEvent()

		mock.ExpectQuery("INSERT INTO custody_events").
			WithArgs(int64(3), int64(2), "file", "ANALYSIS_COMPLETED", "alice", "lab-1", hashA, hashB, nil, event.CreatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))

		require.NoError(t, repo.Create(ctx, event))
		assert.Equal(t, int64(40), event.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateSequence", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("INSERT INTO custody_events").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "custody_events_evidence_sequence_key"})

		assert.ErrorIs(t, repo.Create(ctx, newEvent()), custodyDomain.ErrDuplicateSequence)
	})

	t.Run("UnknownEvidence", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("INSERT INTO custody_events").WillReturnError(&pq.Error{Code: "23503"})

		assert.ErrorIs(t, repo.Create(ctx, newEvent()), custodyDomain.ErrUnknownEvidence)
	})

	t.Run("StorageUnavailable", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("INSERT INTO custody_events").WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, newEvent())

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPostgreSQLCustodyEventRepository_GetLatest(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("ORDER BY sequence DESC").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(41, 3, 2, "file", "ACCESS", "bob", "", hashA, hashA, "viewed", time.Now()))

		event, err := repo.GetLatest(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(41), event.ID)
		assert.Equal(t, custodyDomain.ActionAccess, event.ActionType)
		assert.Equal(t, evidenceDomain.EvidenceTypeFile, event.EvidenceType)
		require.NotNil(t, event.Notes)
		assert.Equal(t, "viewed", *event.Notes)
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("ORDER BY sequence DESC").WillReturnRows(sqlmock.NewRows(eventColumns))

		_, err := repo.GetLatest(ctx, 3)

		assert.ErrorIs(t, err, custodyDomain.ErrCustodyEventNotFound)
	})
}

func TestPostgreSQLCustodyEventRepository_ListByEvidence(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Ascending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("ORDER BY id ASC").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(1, 3, 1, "file", "INITIAL_UPLOAD", "alice", "", nil, hashA, nil, now).
				AddRow(2, 3, 2, "file", "ACCESS", "bob", "", hashA, hashA, nil, now))

		events, err := repo.ListByEvidence(ctx, 3, custodyDomain.OrderAscending)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Nil(t, events[0].HashBefore)
		assert.Equal(t, hashA, *events[1].HashBefore)
	})

	t.Run("DescendingEmpty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("ORDER BY id DESC").WillReturnRows(sqlmock.NewRows(eventColumns))

		events, err := repo.ListByEvidence(ctx, 99, custodyDomain.OrderDescending)

		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("StorageUnavailable", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLCustodyEventRepository(db)

		mock.ExpectQuery("FROM custody_events").WillReturnError(errors.New("timeout"))

		_, err := repo.ListByEvidence(ctx, 3, custodyDomain.OrderDescending)

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestPostgreSQLCustodyEventRepository_Summarize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLCustodyEventRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max", "hash_after"}).AddRow(4, 4, hashB))

	summary, err := repo.Summarize(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.EventCount)
	assert.Equal(t, int64(4), summary.LastSequence)
	assert.Equal(t, hashB, *summary.LastHashAfter)
}

func TestMySQLCustodyEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLCustodyEventRepository(db)
		event := newEvent()

		mock.ExpectExec("INSERT INTO custody_events").WillReturnResult(sqlmock.NewResult(77, 1))

		require.NoError(t, repo.Create(ctx, event))
		assert.Equal(t, int64(77), event.ID)
	})

	t.Run("DuplicateSequence", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLCustodyEventRepository(db)

		mock.ExpectExec("INSERT INTO custody_events").WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '3-2' for key 'custody_events.custody_events_evidence_sequence_key'",
		})

		assert.ErrorIs(t, repo.Create(ctx, newEvent()), custodyDomain.ErrDuplicateSequence)
	})

	t.Run("UnknownEvidence", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLCustodyEventRepository(db)

		mock.ExpectExec("INSERT INTO custody_events").WillReturnError(&mysql.MySQLError{Number: 1452})

		assert.ErrorIs(t, repo.Create(ctx, newEvent()), custodyDomain.ErrUnknownEvidence)
	})
}

func TestMySQLCustodyEventRepository_Reads(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewMySQLCustodyEventRepository(db)

	mock.ExpectQuery("ORDER BY sequence DESC").WillReturnRows(sqlmock.NewRows(eventColumns))
	mock.ExpectQuery("ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(2, 3, 2, "email", "EXPORT", "bob", "usb", hashA, hashB, nil, time.Now()))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max", "hash_after"}).AddRow(0, 0, nil))

	_, err := repo.GetLatest(ctx, 3)
	assert.ErrorIs(t, err, custodyDomain.ErrCustodyEventNotFound)

	events, err := repo.ListByEvidence(ctx, 3, custodyDomain.OrderDescending)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, custodyDomain.ActionExport, events[0].ActionType)

	summary, err := repo.Summarize(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, summary.EventCount)
	assert.Nil(t, summary.LastHashAfter)

	assert.NoError(t, mock.ExpectationsWereMet())
}
