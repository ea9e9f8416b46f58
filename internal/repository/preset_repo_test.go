package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"manufacturing_analytics/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPresetSave_MarshalsCriteria(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewPresetSQLite(db)

	crit := models.Criteria{
		Machines:    []string{"M1", "M2"},
		Maintenance: models.MaintenanceRequired,
	}
	wantCriteria, _ := json.Marshal(crit)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO filter_presets (id, name, criteria, created_at)
		VALUES (?, ?, ?, ?)
	`)).
		WithArgs("p-1", "night shift", string(wantCriteria), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(testCtx(t), models.FilterPreset{
		ID:       "p-1",
		Name:     "night shift",
		Criteria: crit,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPresetGet_DecodesCriteria(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewPresetSQLite(db)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "criteria", "created_at"}).
		AddRow("p-1", "night shift", `{"machines":["M1"],"maintenance":"yes"}`, created)

	mock.ExpectQuery("SELECT id, name, criteria, created_at").
		WithArgs("p-1").
		WillReturnRows(rows)

	got, err := repo.Get(testCtx(t), "p-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "night shift" {
		t.Errorf("name: got %q", got.Name)
	}
	if len(got.Criteria.Machines) != 1 || got.Criteria.Machines[0] != "M1" {
		t.Errorf("criteria not decoded: %+v", got.Criteria)
	}
	if got.Criteria.Maintenance != models.MaintenanceRequired {
		t.Errorf("maintenance: got %q", got.Criteria.Maintenance)
	}
}

func TestPresetGet_NoRows(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewPresetSQLite(db)

	mock.ExpectQuery("SELECT id, name, criteria, created_at").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(testCtx(t), "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}
}

func TestPresetDelete(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewPresetSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM filter_presets WHERE id = ?`)).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(testCtx(t), "p-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Deleting a missing preset reports sql.ErrNoRows.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM filter_presets WHERE id = ?`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(testCtx(t), "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
