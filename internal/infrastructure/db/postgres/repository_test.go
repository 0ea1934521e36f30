package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return mock, db
}

func TestUserCreate_Success(t *testing.T) {
	mock, db := newMock(t)
	repo := NewUserRepository(db)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u := &domain.User{Name: "alice", PasswordHash: "hash"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected id 7, got %d", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreate_UniqueViolation(t *testing.T) {
	mock, db := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.Create(context.Background(), &domain.User{Name: "alice", PasswordHash: "hash"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserCreate_DBError(t *testing.T) {
	mock, db := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.User{Name: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUserFindByName(t *testing.T) {
	mock, db := newMock(t)
	repo := NewUserRepository(db)

	q := `(?s)^SELECT\s+id,\s*name,\s*password_hash\s+FROM\s+users\s+WHERE\s+name\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password_hash"}).AddRow(int64(1), "alice", "hash"))
	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByName error: %v", err)
	}
	if got.ID != 1 || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := repo.FindByName(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestComplaintCreate(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := `(?s)^INSERT\s+INTO\s+complaints\s*\(title,\s*description,\s*created_at,\s*owner_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("Noise", "Loud music", created, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	c := &domain.Complaint{Title: "Noise", Description: "Loud music", CreatedAt: created, OwnerID: 3}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.ID != 11 {
		t.Fatalf("expected id 11, got %d", c.ID)
	}
}

func TestComplaintFindByID_NotFound(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	mock.ExpectQuery(`SELECT\s+id,\s*title.*FROM\s+complaints\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Fatalf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestComplaintListByOwner(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "owner_id"}).
		AddRow(int64(1), "A", "a", created, int64(3)).
		AddRow(int64(2), "B", "b", created, int64(3))
	mock.ExpectQuery(`(?s)FROM\s+complaints\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+id`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "A" || got[1].ID != 2 {
		t.Fatalf("unexpected complaints: %+v", got)
	}
}

func TestComplaintListByOwner_ScanError(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "owner_id"}).
		AddRow("not-a-number", "A", "a", time.Now(), int64(3))
	mock.ExpectQuery(`FROM\s+complaints`).WillReturnRows(rows)

	if _, err := repo.ListByOwner(context.Background(), 3); err == nil {
		t.Fatalf("expected scan error")
	}
}

func TestComplaintUpdate(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	q := `(?s)^UPDATE\s+complaints\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+AND\s+owner_id\s*=\s*\$4\s*$`
	mock.ExpectExec(q).
		WithArgs("New", "desc", int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WithArgs("New", "desc", int64(5), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c := &domain.Complaint{ID: 5, Title: "New", Description: "desc", OwnerID: 3}
	if err := repo.Update(context.Background(), c); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	c.OwnerID = 4
	if err := repo.Update(context.Background(), c); !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Fatalf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestComplaintDelete(t *testing.T) {
	mock, db := newMock(t)
	repo := NewComplaintRepository(db)

	q := `(?s)^DELETE\s+FROM\s+complaints\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`
	mock.ExpectExec(q).
		WithArgs(int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WithArgs(int64(5), int64(3)).
		WillReturnError(errors.New("db down"))

	if err := repo.Delete(context.Background(), 5, 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 5, 3); err == nil || errors.Is(err, domain.ErrComplaintNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
