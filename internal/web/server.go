package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server
type Server struct {
	handler *Handler
	router  *gin.Engine
}

// NewServer creates a new web server
func NewServer(users UserStore, posts PostStore, sessions SessionManager, auth AuthService) *Server {
	handler := NewHandler(users, posts, sessions, auth)

	// gin.New() instead of gin.Default() so we control the log format
	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(loadTemplates())

	// Every request resolves its identity once, up front
	router.Use(handler.CurrentIdentity())

	// Public routes
	router.GET("/", handler.Home)
	router.GET("/login", handler.LoginForm)
	router.POST("/login", handler.Login)
	router.GET("/signup", handler.SignupForm)
	router.POST("/signup", handler.Signup)
	router.GET("/logout", handler.Logout)

	// Routes that require a logged-in user
	protected := router.Group("")
	protected.Use(RequireAuth())
	{
		protected.GET("/new-post", handler.NewPostForm)
		protected.POST("/new-post", handler.NewPost)
		protected.GET("/profile", handler.Profile)
	}

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{
			"Identity": identityFrom(c),
		})
	})

	return &Server{
		handler: handler,
		router:  router,
	}
}

// GetRouter returns the router
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
