package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/config"
	"github.com/flashcard-tracker/flashcard-tracker/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var devEnv = config.Environment{IsDevelopment: true, Domain: "localhost"}

func newTestIssuer(t *testing.T, secret string, ttl time.Duration) *Issuer {
	t.Helper()
	i, err := NewIssuer(secret, ttl, devEnv)
	require.NoError(t, err)
	return i
}

// protected wraps a handler that echoes the user ID from the token.
func protected(t *testing.T, i *Issuer) http.Handler {
	t.Helper()
	mw, err := i.EnsureValidToken()
	require.NoError(t, err)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserID(r)
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strconv.FormatUint(uint64(id), 10)))
	}))
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour, devEnv)
	assert.Error(t, err)
}

func TestCreateToken(t *testing.T) {
	i := newTestIssuer(t, "secret", time.Hour)
	token, err := i.CreateToken(42)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{tokenAudience}, claims.Audience)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestEnsureValidToken(t *testing.T) {
	i := newTestIssuer(t, "secret", time.Hour)
	h := protected(t, i)

	valid, err := i.CreateToken(7)
	require.NoError(t, err)

	expired, err := newTestIssuer(t, "secret", -time.Minute).CreateToken(7)
	require.NoError(t, err)

	forged, err := newTestIssuer(t, "other-secret", time.Hour).CreateToken(7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"Cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: valid}) }, http.StatusOK},
		{"Bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK},
		{"Missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"Expired", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: expired}) }, http.StatusUnauthorized},
		{"Wrong secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }, http.StatusUnauthorized},
		{"Garbage", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"}) }, http.StatusUnauthorized},
		{"Stale cookie with valid header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: expired})
			r.Header.Set("Authorization", "Bearer "+valid)
		}, http.StatusOK},
		{"Valid cookie with forged header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: valid})
			r.Header.Set("Authorization", "Bearer "+forged)
		}, http.StatusOK},
		{"Stale cookie with forged header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: expired})
			r.Header.Set("Authorization", "Bearer "+forged)
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			tt.setup(r)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "7", w.Body.String())
			}
		})
	}
}

func TestCookies(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		i := newTestIssuer(t, "secret", time.Hour)
		w := httptest.NewRecorder()
		i.SetCookie(w, "token")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, CookieName, c.Name)
		assert.Equal(t, "token", c.Value)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Empty(t, c.Domain)
	})

	t.Run("Production", func(t *testing.T) {
		env := config.Environment{Domain: "flashcards.example.com", CookieSecure: true}
		i, err := NewIssuer("secret", time.Hour, env)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		i.SetCookie(w, "token")
		c := w.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, "flashcards.example.com", c.Domain)
	})

	t.Run("Clear", func(t *testing.T) {
		i := newTestIssuer(t, "secret", time.Hour)
		w := httptest.NewRecorder()
		i.ClearCookie(w)

		c := w.Result().Cookies()[0]
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})
}
