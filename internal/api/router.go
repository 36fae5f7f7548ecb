package api

import (
	"database/sql"
	"net/http"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/workflow"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	notifier := workflow.StoreNotifier{DB: db}

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	postsHandler := &PostsHandler{DB: db, Notifier: notifier}
	claimsHandler := &ClaimsHandler{DB: db, Notifier: notifier}
	ratingsHandler := &RatingsHandler{DB: db, Notifier: notifier}
	bookmarksHandler := &BookmarksHandler{DB: db}
	notificationsHandler := &NotificationsHandler{DB: db}
	messagesHandler := &MessagesHandler{DB: db, Notifier: notifier}
	miscHandler := &MiscHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: signup, login, browsing, search, stats.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/posts", postsHandler.List)
	mux.HandleFunc("GET /api/posts/{id}", postsHandler.Get)
	mux.HandleFunc("GET /api/posts/{id}/photo", postsHandler.GetPhoto)
	mux.HandleFunc("GET /api/categories", miscHandler.Categories)
	mux.HandleFunc("GET /api/search", miscHandler.Search)
	mux.HandleFunc("GET /api/stats", miscHandler.Stats)
	mux.HandleFunc("GET /api/users/{id}", usersHandler.Get)
	mux.HandleFunc("GET /api/users/{id}/photo", usersHandler.GetPhoto)
	mux.HandleFunc("GET /api/users/{id}/ratings", ratingsHandler.ListForUser)

	// Account.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/users/me/preferences", authMW(http.HandlerFunc(usersHandler.UpdatePreferences)))
	mux.Handle("PUT /api/users/me/photo", authMW(http.HandlerFunc(usersHandler.UploadPhoto)))
	mux.Handle("DELETE /api/users/me", authMW(http.HandlerFunc(usersHandler.DeleteMe)))

	// Posts.
	mux.Handle("POST /api/posts", authMW(http.HandlerFunc(postsHandler.Create)))
	mux.Handle("GET /api/posts/mine", authMW(http.HandlerFunc(postsHandler.ListMine)))
	mux.Handle("PUT /api/posts/{id}", authMW(http.HandlerFunc(postsHandler.Update)))
	mux.Handle("DELETE /api/posts/{id}", authMW(http.HandlerFunc(postsHandler.Delete)))
	mux.Handle("PUT /api/posts/{id}/photo", authMW(http.HandlerFunc(postsHandler.UploadPhoto)))
	mux.Handle("GET /api/posts/{id}/matches", authMW(http.HandlerFunc(postsHandler.Matches)))

	// Claims.
	mux.Handle("POST /api/posts/{id}/claims", authMW(http.HandlerFunc(claimsHandler.Create)))
	mux.Handle("GET /api/posts/{id}/claims", authMW(http.HandlerFunc(claimsHandler.ListForPost)))
	mux.Handle("GET /api/claims/{id}", authMW(http.HandlerFunc(claimsHandler.Get)))
	mux.Handle("PUT /api/claims/{id}/review", authMW(http.HandlerFunc(claimsHandler.Review)))
	mux.Handle("GET /api/claims/images/{id}", authMW(http.HandlerFunc(claimsHandler.GetProofImage)))

	// Ratings and thanks.
	mux.Handle("POST /api/ratings", authMW(http.HandlerFunc(ratingsHandler.Create)))
	mux.Handle("POST /api/users/{id}/thanks", authMW(http.HandlerFunc(ratingsHandler.Thanks)))

	// Bookmarks.
	mux.Handle("POST /api/posts/{id}/bookmark", authMW(http.HandlerFunc(bookmarksHandler.Toggle)))
	mux.Handle("GET /api/posts/{id}/bookmark", authMW(http.HandlerFunc(bookmarksHandler.Check)))
	mux.Handle("GET /api/bookmarks", authMW(http.HandlerFunc(bookmarksHandler.List)))

	// Notifications.
	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.List)))
	mux.Handle("PUT /api/notifications/read", authMW(http.HandlerFunc(notificationsHandler.MarkRead)))
	mux.Handle("GET /api/notifications/unread", authMW(http.HandlerFunc(notificationsHandler.UnreadCount)))

	// Messaging.
	mux.Handle("POST /api/conversations", authMW(http.HandlerFunc(messagesHandler.Start)))
	mux.Handle("GET /api/conversations", authMW(http.HandlerFunc(messagesHandler.List)))
	mux.Handle("GET /api/conversations/{id}/messages", authMW(http.HandlerFunc(messagesHandler.Messages)))
	mux.Handle("POST /api/conversations/{id}/messages", authMW(http.HandlerFunc(messagesHandler.Send)))
	mux.Handle("GET /api/messages/unread", authMW(http.HandlerFunc(messagesHandler.UnreadCount)))

	// Admin.
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return LoggingMiddleware(mux)
}
