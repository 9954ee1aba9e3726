package controller

import (
	"context"
	"net/http/httptest"
	"testing"

	"dashboard/internal/client"
	intconfig "dashboard/internal/config"
	api "dashboard/internal/http"
	"dashboard/internal/liststate"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "name", "username", "email", "phone", "city", "role", "status", "created_at"}

func userRow(mockRows *sqlmock.Rows, id int64, name, email string) *sqlmock.Rows {
	return mockRows.AddRow(id, name, "", email, "", "", "user", "active", "2025-01-01 00:00:00")
}

// Drives the users page controller against the real router end to end:
// login, initial listing, create, refetch, delete, refetch. The DB layer
// is mocked so expectations double as a trace of the SQL the flow emits.
func TestUsersPageAgainstRouter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(api.NewRouter(intconfig.Env{JWTSecret: "integration-secret"}))
	defer srv.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ctx := context.Background()
	sess := client.NewSession(srv.URL+"/api", 0, nil)

	// login
	mock.ExpectQuery(`FROM users WHERE email = \? OR username = \? LIMIT 1`).
		WithArgs("admin@example.com", "admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "username", "email", "phone", "city", "password_hash", "role", "status",
		}).AddRow(1, "Admin", "admin", "admin@example.com", "", "", string(hash), "admin", "active"))

	if _, err := sess.Login(ctx, "admin@example.com", "rahasia123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatalf("token not stored after login")
	}

	// initial listing
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \? OFFSET \?`).
		WillReturnRows(userRow(sqlmock.NewRows(userColumns), 1, "Admin", "admin@example.com"))

	page := UsersPage(sess)
	page.Load(ctx)
	waitFor(t, func() bool { return page.Store().Snapshot().Phase == liststate.Ready })

	snap := page.Store().Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Email != "admin@example.com" {
		t.Fatalf("unexpected initial listing: %+v", snap.Items)
	}
	if snap.Meta.Total != 1 || snap.Meta.LastPage != 1 {
		t.Fatalf("unexpected meta: %+v", snap.Meta)
	}

	// create
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`FROM users WHERE id = \? LIMIT 1`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(sqlmock.NewRows(userColumns), 2, "Budi", "budi@example.com"))

	// refetch after create
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows(userColumns)
	userRow(rows, 1, "Admin", "admin@example.com")
	userRow(rows, 2, "Budi", "budi@example.com")
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \? OFFSET \?`).
		WillReturnRows(rows)

	err = page.SubmitCreate(ctx, map[string]any{
		"name":    "Budi",
		"email":   "budi@example.com",
		"setting": map[string]string{"city": "Bandung"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	waitFor(t, func() bool { return len(page.Store().Snapshot().Items) == 2 })

	// delete
	mock.ExpectQuery(`FROM users WHERE id = \? LIMIT 1`).
		WithArgs(int64(2)).
		WillReturnRows(userRow(sqlmock.NewRows(userColumns), 2, "Budi", "budi@example.com"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM posts WHERE user_id = \?`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM users WHERE id = \?`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// refetch after delete
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \? OFFSET \?`).
		WillReturnRows(userRow(sqlmock.NewRows(userColumns), 1, "Admin", "admin@example.com"))

	if err := page.ConfirmDelete(ctx, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	waitFor(t, func() bool { return len(page.Store().Snapshot().Items) == 1 })

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A missing token on a protected route surfaces to the controller layer
// as a plain server error; the table routes stay public.
func TestUnauthenticatedMutationRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(api.NewRouter(intconfig.Env{JWTSecret: "integration-secret"}))
	defer srv.Close()

	ctx := context.Background()
	sess := client.NewSession(srv.URL+"/api", 0, nil)
	coll := client.NewCollection[struct {
		ID int64 `json:"id"`
	}](sess, "users")

	_, err = coll.Create(ctx, map[string]string{"name": "X", "email": "x@example.com"})
	if !client.IsServer(err) {
		t.Fatalf("expected server error without token, got %v", err)
	}

	// public listing still works
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \? OFFSET \?`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	pageOut, err := coll.List(ctx, client.ListParams{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("public listing failed: %v", err)
	}
	if len(pageOut.Items) != 0 || pageOut.Meta.Total != 0 {
		t.Fatalf("unexpected listing: %+v", pageOut)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
