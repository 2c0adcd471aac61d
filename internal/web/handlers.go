package web

import (
	"errors"
	"log"
	"net/http"

	"miniblog/internal/auth"
	"miniblog/internal/models"
	"miniblog/internal/session"
	"miniblog/internal/store"

	"github.com/gin-gonic/gin"
)

// sessionCookie is the name of the cookie carrying the signed session token.
const sessionCookie = "blog_session"

// UserStore is the slice of the credential store the handlers need.
type UserStore interface {
	FindByID(id string) (*models.User, error)
}

// PostStore persists and lists blog posts.
type PostStore interface {
	Create(title, content, thumbnail, creatorID string) (*models.Post, error)
	ListAll() ([]models.Post, error)
	ListByCreator(creatorID string) ([]models.Post, error)
}

// SessionManager issues and resolves session cookies.
type SessionManager interface {
	Issue(userID, username string) (string, error)
	Resolve(cookie string) (*session.Identity, error)
	Destroy(cookie string) error
}

// AuthService runs the signup and login flows.
type AuthService interface {
	SignUp(username, email, password string) (*models.User, error)
	LogIn(email, password string) (*models.User, error)
}

// Handler contains the route handlers
type Handler struct {
	users    UserStore
	posts    PostStore
	sessions SessionManager
	auth     AuthService
}

// NewHandler creates a new handler
func NewHandler(users UserStore, posts PostStore, sessions SessionManager, auth AuthService) *Handler {
	return &Handler{
		users:    users,
		posts:    posts,
		sessions: sessions,
		auth:     auth,
	}
}

// Home renders the feed, newest post first
func (h *Handler) Home(c *gin.Context) {
	posts, err := h.posts.ListAll()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Posts":    posts,
		"Identity": identityFrom(c),
	})
}

// LoginForm renders the login form
func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Identity": identityFrom(c),
	})
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Login verifies credentials and establishes a session. Unknown email
// and wrong password get the same message on purpose.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginFailed(c)
		return
	}

	user, err := h.auth.LogIn(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.loginFailed(c)
			return
		}
		h.serverError(c, err)
		return
	}

	cookie, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.SetCookie(sessionCookie, cookie, int(session.TTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loginFailed(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error":    "Invalid credentials",
		"Identity": identityFrom(c),
	})
}

// SignupForm renders the signup form
func (h *Handler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Username": "",
		"Email":    "",
		"Identity": identityFrom(c),
	})
}

type signupForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Signup creates the user and sends them to the login form. Signing up
// does not log the new user in.
func (h *Handler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":    "A username, a valid email and a password are required.",
			"Username": form.Username,
			"Email":    form.Email,
			"Identity": identityFrom(c),
		})
		return
	}

	if _, err := h.auth.SignUp(form.Username, form.Email, form.Password); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"Error":    "Email already in use. Please try another.",
				"Username": form.Username,
				"Email":    form.Email,
				"Identity": identityFrom(c),
			})
			return
		}
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// NewPostForm renders the post form
func (h *Handler) NewPostForm(c *gin.Context) {
	c.HTML(http.StatusOK, "post.html", gin.H{
		"Identity": identityFrom(c),
	})
}

type postForm struct {
	Title     string `form:"title"`
	Content   string `form:"content"`
	Thumbnail string `form:"thumbnail"`
}

// NewPost creates a post owned by the current user. Empty fields are
// accepted as-is.
func (h *Handler) NewPost(c *gin.Context) {
	ident := identityFrom(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.serverError(c, err)
		return
	}

	if _, err := h.posts.Create(form.Title, form.Content, form.Thumbnail, ident.UserID); err != nil {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Profile renders the current user and their posts
func (h *Handler) Profile(c *gin.Context) {
	ident := identityFrom(c)

	user, err := h.users.FindByID(ident.UserID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if user == nil {
		// Session points at a user that no longer exists
		c.Redirect(http.StatusFound, "/login")
		return
	}

	posts, err := h.posts.ListByCreator(ident.UserID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":     user,
		"Posts":    posts,
		"Identity": ident,
	})
}

// Logout destroys the session and clears the cookie. Works the same
// whether or not anyone was logged in.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		if err := h.sessions.Destroy(cookie); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) serverError(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "something went wrong")
}
