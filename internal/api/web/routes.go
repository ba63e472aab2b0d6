package web

import "github.com/gin-gonic/gin"

// SetupRoutes registers the pages and form actions. middleware, typically
// the session loader, runs on every page route. The proxy belongs on the
// engine so that it also covers unrouted paths.
func SetupRoutes(r *gin.Engine, h *Handler, middleware ...gin.HandlerFunc) {
	pages := r.Group("/", middleware...)

	pages.GET("/", h.Home)
	pages.GET("/signin", h.SignInPage)
	pages.GET("/signup", h.SignUpPage)
	pages.GET("/messages", h.MessagesPage)
	pages.GET("/user", h.UserPage)
	pages.GET("/admin", h.AdminPage)

	pages.POST("/signin", h.SignIn)
	pages.POST("/signup", h.SignUp)
	pages.POST("/signout", h.SignOut)
	pages.POST("/signin/magic-link", h.MagicLink)
	pages.POST("/contact", h.Contact)
}
