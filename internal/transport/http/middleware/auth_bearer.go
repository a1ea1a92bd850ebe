package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/service"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
	logctx "github.com/pribylovaa/forum-engagement/pkg/log"
)

// accessClaims — claims access-токена auth-service.
type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier проверяет HS256 access-токены.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewTokenVerifier — проверка по секрету, issuer и допустимой аудитории из конфига.
func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify возвращает идентификатор пользователя из валидного токена.
// Идентификатор берётся из claim "uid", при его отсутствии из "sub".
func (v *TokenVerifier) Verify(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if len(v.audience) > 0 {
		opts = append(opts, jwt.WithAudience(v.audience...))
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", service.ErrUnauthenticated)
		}

		return "", fmt.Errorf("%w: %w", service.ErrUnauthenticated, err)
	}

	uid := strings.TrimSpace(claims.UserID)
	if uid == "" {
		uid = strings.TrimSpace(claims.Subject)
	}
	if uid == "" {
		return "", fmt.Errorf("%w: token has no subject", service.ErrUnauthenticated)
	}

	return uid, nil
}

// AuthBearer проверяет Bearer-токен из Authorization и кладёт id пользователя в контекст.
// Браузерные websocket-клиенты не умеют ставить заголовки, поэтому токен
// принимается и из query-параметра access_token.
// Нет токена или он невалиден -> 401.
func AuthBearer(v *TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, service.ErrUnauthenticated)
				return
			}

			uid, err := v.Verify(token)
			if err != nil {
				logctx.From(r.Context()).Debug("token rejected", "err", err)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, uid)
			ctx = logctx.With(ctx, "user_id", uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только пользователей из auth.admins. Ставится после AuthBearer.
func RequireAdmin(cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.IsAdmin(UserID(r.Context())) {
				apierrors.WriteError(w, r, apierrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID — аутентифицированный пользователь из контекста ("" если нет).
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}

// WithUserID кладёт пользователя в контекст (для тестов хендлеров без токена).
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) && len(auth) > len(prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}
