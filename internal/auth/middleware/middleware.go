package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/session"
)

// CookieName carries the signed session token in the browser.
const CookieName = "examgate_sid"

// AuthService signs and verifies the session cookie. The token only wraps
// the session ID; everything else lives in the session store.
type AuthService struct {
	hmac []byte
	ttl  time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{hmac: []byte(secret), ttl: ttl}
}

type Claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (a *AuthService) IssueToken(sid string) (string, error) {
	now := time.Now()
	claims := &Claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "examgate",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}

// SessionMiddleware resolves the request's session: an existing cookie is
// verified and its session loaded; otherwise a fresh anonymous session is
// minted. The session and its stored role land in the request context.
func SessionMiddleware(a *AuthService, store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if claims, perr := a.Parse(c.Value); perr == nil && claims != nil {
					sid = claims.SID
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				tok, err := a.IssueToken(sid)
				if err != nil {
					http.Error(w, "session", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    tok,
					Path:     "/",
					MaxAge:   int(a.ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := session.New(store, sid)
			ctx := WithSession(r.Context(), sess)
			if role, err := sess.Role(ctx); err == nil && role != "" {
				ctx = rbac.WithRole(ctx, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DropCookie expires the session cookie, used at logout.
func DropCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
