package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authsvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/auth"
	ratesvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/rate"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
)

type fakeCredentialStore struct {
	accounts map[string]authsvc.Account
	nextID   int
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{accounts: make(map[string]authsvc.Account)}
}

func (s *fakeCredentialStore) FindByPhone(_ context.Context, phone string) (authsvc.Account, error) {
	account, ok := s.accounts[phone]
	if !ok {
		return authsvc.Account{}, authsvc.ErrAccountNotFound
	}
	return account, nil
}

func (s *fakeCredentialStore) Create(_ context.Context, account authsvc.Account) (authsvc.Account, error) {
	if _, ok := s.accounts[account.Phone]; ok {
		return authsvc.Account{}, authsvc.ErrPhoneTaken
	}
	s.nextID++
	account.ID = fmt.Sprintf("id-%d", s.nextID)
	s.accounts[account.Phone] = account
	return account, nil
}

type fakeReplayStore struct {
	used map[string]struct{}
}

func (s *fakeReplayStore) MarkUsed(_ context.Context, jti string, _ time.Duration) (bool, error) {
	if s.used == nil {
		s.used = make(map[string]struct{})
	}
	if _, ok := s.used[jti]; ok {
		return false, nil
	}
	s.used[jti] = struct{}{}
	return true, nil
}

type fakeWindowStore struct {
	counts map[string]int64
}

func (s *fakeWindowStore) IncrementWindow(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s.counts == nil {
		s.counts = make(map[string]int64)
	}
	s.counts[key]++
	return s.counts[key], window, nil
}

func newTestAuthHandler(limiter *ratesvc.Limiter) (*AuthHandler, *fakeCredentialStore) {
	store := newFakeCredentialStore()
	hasher := authsvc.NewHasher(bcrypt.MinCost)
	jwtManager := authsvc.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)
	service := authsvc.NewService(store, &fakeReplayStore{}, hasher, jwtManager, "User", zap.NewNop())
	return NewAuthHandler(service, limiter, zap.NewNop()), store
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignupThenLogin(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	rec := postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status: got %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var signupBody dto.SignupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &signupBody); err != nil {
		t.Fatalf("decode signup body: %v", err)
	}
	if signupBody.Status != "OK" {
		t.Fatalf("signup status field: got %q, want OK", signupBody.Status)
	}

	rec = postJSON(t, handler.Login, "/Login", `{"phone":"9900112233","password":"password1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var loginBody dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if loginBody.Status != "Success" {
		t.Fatalf("login Status: got %q, want Success", loginBody.Status)
	}
	if loginBody.Role != "User" || loginBody.Name != "Akash" || loginBody.Phone != "9900112233" {
		t.Fatalf("unexpected login profile: %+v", loginBody)
	}
	if loginBody.Token == "" || loginBody.RefreshToken == "" {
		t.Fatal("login must return both tokens")
	}
	if loginBody.ExpiresInSec <= 0 {
		t.Fatalf("expiresInSec must be positive, got %d", loginBody.ExpiresInSec)
	}
}

func TestSignupDuplicatePhoneConflict(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	rec := postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first signup: got %d", rec.Code)
	}
	rec = postJSON(t, handler.Signup, "/Signup", `{"name":"Other","phone":"9900112233","password":"password2"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: got %d, want %d", rec.Code, http.StatusConflict)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "PHONE_TAKEN" {
		t.Fatalf("code: got %q, want PHONE_TAKEN", body["code"])
	}
}

func TestLoginUnknownPhoneNotFound(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	rec := postJSON(t, handler.Login, "/Login", `{"phone":"0000000000","password":"whatever"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "ACCOUNT_NOT_FOUND" {
		t.Fatalf("code: got %q, want ACCOUNT_NOT_FOUND", body["code"])
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)

	rec := postJSON(t, handler.Login, "/Login", `{"phone":"9900112233","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "BAD_CREDENTIAL" {
		t.Fatalf("code: got %q, want BAD_CREDENTIAL", body["code"])
	}
}

func TestLoginMalformedBody(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	rec := postJSON(t, handler.Login, "/Login", `{"phone":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRefreshRotatesAndRejectsReplay(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)
	rec := postJSON(t, handler.Login, "/Login", `{"phone":"9900112233","password":"password1"}`)
	var loginBody dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("decode login body: %v", err)
	}

	refreshReq := fmt.Sprintf(`{"refreshToken":%q}`, loginBody.RefreshToken)
	rec = postJSON(t, handler.Refresh, "/RefreshToken", refreshReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var refreshBody dto.RefreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshBody); err != nil {
		t.Fatalf("decode refresh body: %v", err)
	}
	if refreshBody.Token == "" || refreshBody.RefreshToken == "" {
		t.Fatal("refresh must return a full token pair")
	}
	if refreshBody.RefreshToken == loginBody.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	rec = postJSON(t, handler.Refresh, "/RefreshToken", refreshReq)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("replayed refresh: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "INVALID_REFRESH_TOKEN" {
		t.Fatalf("code: got %q, want INVALID_REFRESH_TOKEN", body["code"])
	}
}

func TestRefreshMissingToken(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	for _, body := range []string{`{}`, `{"refreshToken":""}`, `{"refreshToken":"   "}`} {
		rec := postJSON(t, handler.Refresh, "/RefreshToken", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: got %d, want %d", body, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestCheckUserExist(t *testing.T) {
	handler, _ := newTestAuthHandler(nil)

	postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)

	req := httptest.NewRequest(http.MethodGet, "/checkUserExist?phone=9900112233", nil)
	rec := httptest.NewRecorder()
	handler.CheckUserExist(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusOK)
	}
	var body dto.CheckUserExistResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Exists {
		t.Fatal("registered phone must report exists=true")
	}

	req = httptest.NewRequest(http.MethodGet, "/checkUserExist?phone=0000000000", nil)
	rec = httptest.NewRecorder()
	handler.CheckUserExist(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Exists {
		t.Fatal("unknown phone must report exists=false")
	}
}

func TestLoginThrottleKeyedOnHostNotPort(t *testing.T) {
	store := &fakeWindowStore{}
	limiter := ratesvc.NewLimiter(store, 0, 1)
	handler, _ := newTestAuthHandler(limiter)

	var last *httptest.ResponseRecorder
	for i, port := range []string{"1111", "2222", "3333"} {
		req := httptest.NewRequest(http.MethodPost, "/Login", strings.NewReader(`{"phone":"9900112233","password":"password1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:" + port
		last = httptest.NewRecorder()
		handler.Login(last, req)
		if i == 0 && last.Code == http.StatusTooManyRequests {
			t.Fatal("first attempt must not be throttled")
		}
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("reconnecting on a new port must not reset the window: got %d, want %d", last.Code, http.StatusTooManyRequests)
	}
	for key := range store.counts {
		if strings.Contains(strings.TrimPrefix(key, "rate:login:10s:"), ":") {
			t.Fatalf("window key %q carries a port", key)
		}
	}
}

func TestClientIPFromRequest(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"host port stripped", "203.0.113.7:54321", nil, "203.0.113.7"},
		{"bare host kept", "203.0.113.7", nil, "203.0.113.7"},
		{"forwarded for wins", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"}, "198.51.100.4"},
		{"real ip fallback", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/Login", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := clientIPFromRequest(req); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	limiter := ratesvc.NewLimiter(&fakeWindowStore{}, 0, 2)
	handler, _ := newTestAuthHandler(limiter)

	postJSON(t, handler.Signup, "/Signup", `{"name":"Akash","phone":"9900112233","password":"password1"}`)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = postJSON(t, handler.Login, "/Login", `{"phone":"9900112233","password":"password1"}`)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want %d", last.Code, http.StatusTooManyRequests)
	}
	var body map[string]any
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "RATE_LIMITED" {
		t.Fatalf("code: got %v, want RATE_LIMITED", body["code"])
	}
	if retry, ok := body["retry_after_sec"].(float64); !ok || retry <= 0 {
		t.Fatalf("retry_after_sec must be positive, got %v", body["retry_after_sec"])
	}
}
