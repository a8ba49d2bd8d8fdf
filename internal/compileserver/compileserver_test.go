package compileserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/tablegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	tables, conflicts, err := tablegen.Build(mgrammar.New())
	require.NoError(t, err)
	require.Empty(t, conflicts)

	apiKey := "class-secret"
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	require.NoError(t, err)

	return New(tables, []byte("test-jwt-secret"), string(hash)), apiKey
}

func TestCreateSessionAndCompileEndToEnd(t *testing.T) {
	srv, apiKey := newTestServer(t)
	router := srv.Router()
	ts := httptest.NewServer(router)
	defer ts.Close()

	sessBody, _ := json.Marshal(sessionRequest{APIKey: apiKey})
	resp, err := http.Post(ts.URL+PathPrefix+"/sessions", "application/json", bytes.NewReader(sessBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sess sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))
	assert.NotEmpty(t, sess.Token)

	compileBody, _ := json.Marshal(compileRequest{Source: "inicio varinicio inteiro x; varfim; x <- 3; fim"})
	req, err := http.NewRequest(http.MethodPost, ts.URL+PathPrefix+"/compile", bytes.NewReader(compileBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	compResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer compResp.Body.Close()
	require.Equal(t, http.StatusOK, compResp.StatusCode)

	var out compileResponse
	require.NoError(t, json.NewDecoder(compResp.Body).Decode(&out))
	assert.Contains(t, out.CSource, "x = 3;")
}

func TestCompileWithoutAuthIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	compileBody, _ := json.Marshal(compileRequest{Source: "inicio varinicio varfim; fim"})
	resp, err := http.Post(ts.URL+PathPrefix+"/compile", "application/json", bytes.NewReader(compileBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateSessionWithWrongAPIKeyIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	sessBody, _ := json.Marshal(sessionRequest{APIKey: "wrong"})
	resp, err := http.Post(ts.URL+PathPrefix+"/sessions", "application/json", bytes.NewReader(sessBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
