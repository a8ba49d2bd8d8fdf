// Package compileserver exposes mgolc's compilation pipeline over
// HTTP, so a browser-based editor can submit MGol source without a
// local toolchain.
//
// Grounded on dekarrin-tunaq/server's endpoint/auth structure
// (server/api/api.go's PathPrefix convention, server/token.go's
// JWT issue-and-verify shape), reduced to this package's single
// resource (compile sessions) instead of the teacher's full user/auth
// domain, since MGol grading sessions carry no persisted identity
// beyond the lifetime of one JWT.
package compileserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/mgolc/internal/compiler"
	"github.com/dekarrin/mgolc/internal/sltab"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PathPrefix is the prefix every route in this package is mounted
// under, mirroring server/api.API's PathPrefix convention.
const PathPrefix = "/api/v1"

const tokenIssuer = "mgolc"
const tokenTTL = 30 * time.Minute

// Server holds everything needed to answer compile requests.
type Server struct {
	tables       *sltab.Tables
	jwtSecret    []byte
	adminKeyHash []byte
}

// New returns a Server that compiles against tables and authenticates
// session requests against adminKeyHash, a bcrypt hash of the class
// API key (config.Server.AdminKeyHash).
func New(tables *sltab.Tables, jwtSecret []byte, adminKeyHash string) *Server {
	return &Server{tables: tables, jwtSecret: jwtSecret, adminKeyHash: []byte(adminKeyHash)}
}

// Router builds the chi router serving every route under PathPrefix.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Route(PathPrefix, func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.With(s.requireAuth).Post("/compile", s.handleCompile)
	})
	return r
}

type sessionRequest struct {
	APIKey string `json:"api_key"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, req *http.Request) {
	var body sessionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	if bcrypt.CompareHashAndPassword(s.adminKeyHash, []byte(body.APIKey)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid API key")
		return
	}

	sessionID := uuid.New()
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"sub": sessionID.String(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := tok.SignedString(s.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not sign session token")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: signed, SessionID: sessionID.String()})
}

type compileRequest struct {
	Source string `json:"source"`
}

type diagnosticResponse struct {
	Phase   string `json:"phase"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type compileResponse struct {
	CSource     string               `json:"c_source,omitempty"`
	Diagnostics []diagnosticResponse `json:"diagnostics,omitempty"`
}

func (s *Server) handleCompile(w http.ResponseWriter, req *http.Request) {
	var body compileRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	result := compiler.Compile(strings.NewReader(body.Source), s.tables)
	if result.Diagnostics.Empty() {
		writeJSON(w, http.StatusOK, compileResponse{CSource: result.CSource})
		return
	}

	resp := compileResponse{}
	for _, e := range result.Diagnostics.All() {
		resp.Diagnostics = append(resp.Diagnostics, diagnosticResponse{
			Phase: e.Phase, Line: e.Line, Col: e.Col, Code: e.Code, Message: e.Message,
		})
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "authorization header not in Bearer format")
			return
		}

		_, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithLeeway(time.Minute))
		if err != nil {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid session token: %v", err))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
