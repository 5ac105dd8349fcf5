// Package authtest provides in-process fakes of the Twitch authorization
// server and the Helix API for tests.
package authtest

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the claims of the access tokens minted by AuthServer.
type Claims struct {
	jwt.RegisteredClaims

	Scopes []string `json:"scopes,omitempty"`
}

// AuthServer is a fake OAuth2 authorization server serving the
// client_credentials and refresh_token grants at /oauth2/token.
type AuthServer struct {
	*httptest.Server

	ClientID string

	secretHash []byte
	signingKey []byte

	mu            sync.Mutex
	ttl           time.Duration
	issueRefresh  bool
	refreshTokens map[string][]string // refresh token -> granted scopes
	grants        map[string]int
	forms         []url.Values
}

// NewAuthServer starts a server that accepts exactly one client. Tokens live
// for an hour and come with a refresh token unless configured otherwise.
func NewAuthServer(t testing.TB, clientID, clientSecret string) *AuthServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("authtest: hash client secret: %v", err)
	}

	s := &AuthServer{
		ClientID:      clientID,
		secretHash:    hash,
		signingKey:    []byte(rand.Text()),
		ttl:           time.Hour,
		issueRefresh:  true,
		refreshTokens: make(map[string][]string),
		grants:        make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", s.handleToken)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// Root is the authorization server root to configure clients with.
func (s *AuthServer) Root() string {
	return s.URL + "/oauth2/"
}

// SetTTL changes the expires_in reported for new tokens. Zero omits it.
func (s *AuthServer) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// SetIssueRefreshTokens controls whether grants return a refresh token.
func (s *AuthServer) SetIssueRefreshTokens(issue bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issueRefresh = issue
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *AuthServer) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.refreshTokens)
}

// Grants returns how many successful grants of grantType were served.
func (s *AuthServer) Grants(grantType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grants[grantType]
}

// Forms returns the form bodies of every token request received.
func (s *AuthServer) Forms() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.forms...)
}

// MintAccessToken signs an access token without going through a grant, for
// use as a pre-issued static token.
func (s *AuthServer) MintAccessToken(scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.URL,
			Subject:  s.ClientID,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       rand.Text(),
		},
		Scopes: scopes,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Verify checks the signature and expiry of an access token minted by s.
func (s *AuthServer) Verify(accessToken string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *AuthServer) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}

	s.mu.Lock()
	s.forms = append(s.forms, r.PostForm)
	s.mu.Unlock()

	if err := s.authenticateClient(r.PostForm); err != nil {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", err.Error())
		return
	}

	scopes := strings.Fields(r.PostForm.Get("scope"))

	grantType := r.PostForm.Get("grant_type")
	switch grantType {
	case "client_credentials":
	case "refresh_token":
		granted, ok := s.redeemRefreshToken(r.PostForm.Get("refresh_token"))
		if !ok {
			writeOAuthError(w, http.StatusBadRequest, "invalid_grant", "invalid refresh token")
			return
		}
		if len(scopes) == 0 {
			scopes = granted
		}
	default:
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", "grant type not supported")
		return
	}

	s.issue(w, grantType, scopes)
}

func (s *AuthServer) authenticateClient(form url.Values) error {
	if form.Get("client_id") != s.ClientID {
		return errors.New("unknown client")
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(form.Get("client_secret"))); err != nil {
		return errors.New("invalid client secret")
	}
	return nil
}

func (s *AuthServer) redeemRefreshToken(token string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scopes, ok := s.refreshTokens[token]
	if ok {
		delete(s.refreshTokens, token)
	}
	return scopes, ok
}

func (s *AuthServer) issue(w http.ResponseWriter, grantType string, scopes []string) {
	s.mu.Lock()
	ttl := s.ttl
	issueRefresh := s.issueRefresh
	s.mu.Unlock()

	accessToken, err := s.MintAccessToken(scopes, ttl)
	if err != nil {
		writeOAuthError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if scopes == nil {
		scopes = []string{}
	}
	resp := map[string]any{
		"access_token": accessToken,
		"token_type":   "bearer",
		// Twitch returns granted scopes as an array.
		"scope": scopes,
	}
	if ttl > 0 {
		resp["expires_in"] = int(ttl.Seconds())
	}

	s.mu.Lock()
	if issueRefresh {
		refreshToken := rand.Text()
		s.refreshTokens[refreshToken] = scopes
		resp["refresh_token"] = refreshToken
	}
	s.grants[grantType]++
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
