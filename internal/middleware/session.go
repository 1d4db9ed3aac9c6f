// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/sanggunian/internal/model"
)

const sessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// roleContextKey はリクエストコンテキストにロールを格納するためのキー。
var roleContextKey = contextKey("role")

// SessionStore はセッションの検索・更新に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionStore interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

// NewSessionMiddleware はHTTP Only Cookieからセッションを読み取り、
// 有効性を検証するミドルウェアを返す。
// 絶対期限切れ・アイドル期限切れのセッションはストア側でnilとして読まれる。
// 有効なセッションは最終アクセス日時を更新し、アイドルタイムアウトを先送りする。
// 認証済みユーザーIDとロールをリクエストコンテキストに注入する。
// 未認証リクエストには401 Unauthorizedを返す。
func NewSessionMiddleware(store SessionStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. CookieからセッションIDを取得
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// 2. セッションの有効性を検証
			session, err := store.FindByID(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("failed to find session",
					slog.String("error", err.Error()),
				)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if session == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// 3. 最終アクセス日時を更新（失敗してもリクエストは通す）
			if err := store.Touch(r.Context(), session.ID, time.Now()); err != nil {
				slog.Warn("failed to touch session",
					slog.String("session_id", session.ID),
					slog.String("error", err.Error()),
				)
			}

			// 4. 認証済みユーザーIDとロールをコンテキストに注入
			ctx := context.WithValue(r.Context(), userIDContextKey, session.UserID)
			ctx = context.WithValue(ctx, roleContextKey, session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin はadminロールのみ通過させるミドルウェア。
// セッションミドルウェアの内側で使用する。
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := RoleFromContext(r.Context())
		if err != nil || role != model.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// RoleFromContext はリクエストコンテキストからロールを取得する。
func RoleFromContext(ctx context.Context) (model.Role, error) {
	role, ok := ctx.Value(roleContextKey).(model.Role)
	if !ok || role == "" {
		return "", fmt.Errorf("role not found in context")
	}
	return role, nil
}

// ContextWithUser はコンテキストにユーザーIDとロールを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, userID string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, userIDContextKey, userID)
	return context.WithValue(ctx, roleContextKey, role)
}
