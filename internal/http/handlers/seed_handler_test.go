package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSeeder struct {
	n   int
	err error
}

func (f fakeSeeder) SeedDefault(context.Context) (int, error) { return f.n, f.err }

func TestSeedHandler(t *testing.T) {
	r := newTestRouter("")
	r.POST("/ok", NewSeedHandler(fakeSeeder{n: 6}).Seed)
	r.POST("/fail", NewSeedHandler(fakeSeeder{err: errors.New("insert failed")}).Seed)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imported":6}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type fakeIssuer struct {
	got string
}

func (f *fakeIssuer) Issue(ownerID string) (string, time.Time, error) {
	f.got = ownerID
	return "signed", time.Unix(1700000000, 0), nil
}

func TestTokenHandler_Issue(t *testing.T) {
	issuer := &fakeIssuer{}
	r := newTestRouter("")
	r.POST("/api/dev/token", NewTokenHandler(issuer).Issue)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/dev/token", strings.NewReader(`{"owner_id":"google-oauth2|42"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"signed","expires_at":1700000000}`, w.Body.String())
	assert.Equal(t, "google-oauth2|42", issuer.got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/dev/token", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
