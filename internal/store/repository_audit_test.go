// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/models"
)

func newTestAuditRepo(t *testing.T) (*auditRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &auditRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestAuditRecord_Success(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	occurredAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO audit_log").
		WithArgs(int64(7), int64(42), "SHOW_PASSWORD", []byte(`{"ip":"203.0.113.9"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"audit_id", "occurred_at"}).AddRow(1, occurredAt))

	recorded, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
		Metadata:     map[string]any{"ip": "203.0.113.9"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.AuditID != 1 {
		t.Errorf("expected AuditID=1, got %d", recorded.AuditID)
	}
	if !recorded.OccurredAt.Equal(occurredAt) {
		t.Errorf("expected occurred_at %v, got %v", occurredAt, recorded.OccurredAt)
	}
}

func TestAuditRecord_NilMetadata(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO audit_log").
		WithArgs(int64(7), int64(42), "SHOW_PASSWORD", []byte(`null`)).
		WillReturnRows(sqlmock.NewRows([]string{"audit_id", "occurred_at"}).AddRow(1, time.Now()))

	_, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuditRecord_DBError(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO audit_log").
		WillReturnError(errors.New("db network error"))

	_, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
	})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestAuditRecord_RetriesTransientErrors(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	occurredAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	// two deadlock rollbacks, then success on the third attempt
	mock.ExpectQuery("INSERT INTO audit_log").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectQuery("INSERT INTO audit_log").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectQuery("INSERT INTO audit_log").
		WillReturnRows(sqlmock.NewRows([]string{"audit_id", "occurred_at"}).AddRow(5, occurredAt))

	recorded, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.AuditID != 5 {
		t.Errorf("expected AuditID=5, got %d", recorded.AuditID)
	}
}

func TestAuditRecord_GivesUpAfterBoundedAttempts(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	for i := 0; i < recordAttempts; i++ {
		mock.ExpectQuery("INSERT INTO audit_log").WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	_, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
	})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected all attempts consumed: %v", err)
	}
}

func TestAuditRecord_NoRowReturned(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO audit_log").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Record(context.Background(), models.AuditEntry{
		UserID:       7,
		CredentialID: 42,
		Action:       models.AuditActionShowPassword,
	})
	if !errors.Is(err, ErrAuditNotRecorded) {
		t.Fatalf("expected ErrAuditNotRecorded, got %v", err)
	}
}
