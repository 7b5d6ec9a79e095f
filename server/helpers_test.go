package server

import (
	"context"
	"encoding/json"
	"goodreads/config"
	"goodreads/database"
	"goodreads/middleware"
	"goodreads/models"
	"goodreads/store"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "1234abcd"

type testEnv struct {
	t   *testing.T
	app *fiber.App
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{
		Env:             "test",
		JWTKey:          "test-secret",
		SaltRound:       bcrypt.MinCost,
		SessionTTLHours: 1,
		APIPageSize:     2,
		BooksPageSize:   10,
		FeedPageSize:    10,
	}

	db, err := database.Open("sqlite", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	middleware.InitSessions(time.Hour)

	return &testEnv{t: t, app: New()}
}

func (e *testEnv) createUser(username string) *models.User {
	e.t.Helper()

	u, err := store.NewUserStore(database.Database.Db, bcrypt.MinCost).Create(context.Background(), store.NewAccount{
		Username:  username,
		FirstName: "ilhom",
		LastName:  "karimov",
		Email:     username + "@mail.com",
		Password:  testPassword,
	})
	require.NoError(e.t, err)
	return u
}

func (e *testEnv) createBook(title string) *models.Book {
	e.t.Helper()

	b := &models.Book{Title: title, Description: "description of " + title, ISBN: "555555"}
	require.NoError(e.t, store.NewBookStore(database.Database.Db).Create(context.Background(), b))
	return b
}

// createReview inserts a review created at the given time so feed order is
// deterministic.
func (e *testEnv) createReview(book *models.Book, user *models.User, stars int, comment string, at time.Time) *models.Review {
	e.t.Helper()

	r := &models.Review{BookID: book.ID, UserID: user.ID, StarsGiven: stars, Comment: comment, CreatedAt: at}
	created, err := store.NewReviewStore(database.Database.Db).Create(context.Background(), r)
	require.NoError(e.t, err)
	return created
}

// client carries cookies between requests like a browser. Unsafe requests
// get the CSRF header a page script would send, unless noCSRF is set.
type client struct {
	env     *testEnv
	cookies map[string]*http.Cookie
	bearer  string
	noCSRF  bool
}

func (e *testEnv) client() *client {
	return &client{env: e, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.env.t.Helper()

	if !cl.noCSRF && !isSafeMethod(req.Method) && req.Header.Get("X-Csrf-Token") == "" {
		req.Header.Set("X-Csrf-Token", cl.csrfToken())
	}

	for _, ck := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	if cl.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+cl.bearer)
	}

	resp, err := cl.env.app.Test(req, -1)
	require.NoError(cl.env.t, err)

	for _, ck := range resp.Cookies() {
		expired := ck.MaxAge < 0 || ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now()))
		if expired {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck
	}
	return resp
}

// csrfToken loads a page so the server issues or refreshes the token, then
// reads it back from the cookie.
func (cl *client) csrfToken() string {
	cl.env.t.Helper()

	resp := cl.get("/users/login/")
	_ = resp.Body.Close()
	ck, ok := cl.cookies[middleware.CSRFCookieName]
	require.True(cl.env.t, ok, "no csrf cookie issued")
	return ck.Value
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func (cl *client) get(path string) *http.Response {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) postForm(path string, form url.Values) *http.Response {
	return cl.sendForm(http.MethodPost, path, form)
}

func (cl *client) sendForm(method, path string, form url.Values) *http.Response {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return cl.do(req)
}

func (cl *client) sendJSON(method, path string, body interface{}) *http.Response {
	cl.env.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(cl.env.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return cl.do(req)
}

func (cl *client) login(username string) {
	cl.env.t.Helper()

	resp := cl.postForm("/users/login/", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(cl.env.t, http.StatusFound, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
