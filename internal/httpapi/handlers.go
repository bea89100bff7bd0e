package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"activity-platform/internal/activity"
	"activity-platform/internal/auth"
	"activity-platform/internal/user"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Users      *user.Service
	Activities *activity.Recorder
}

// --- Users ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrEmailTaken):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	tok, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "email or password incorrect"})
		case errors.Is(err, user.ErrInactiveUser):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user is inactive"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h Handlers) Profile(c *gin.Context) {
	uid, err := auth.PrincipalID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	u, err := h.Users.Profile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// --- Activities ---

func (h Handlers) MyActivities(c *gin.Context) {
	uid, err := auth.PrincipalID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, offset := pageParams(c)
	records, err := h.Activities.ListByUser(c.Request.Context(), uid, limit, offset)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "activity lookup failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h Handlers) AllActivities(c *gin.Context) {
	if _, err := auth.PrincipalID(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, offset := pageParams(c)
	records, err := h.Activities.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "activity lookup failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}

type trackRequest struct {
	Screen  string  `json:"screen"`
	Action  string  `json:"action"`
	Details *string `json:"details"`
}

// Track inserts a record on behalf of the caller, for client-side events the
// middleware cannot see. Unlike the middleware paths this write is
// synchronous; the caller asked for it and should learn if it failed.
func (h Handlers) Track(c *gin.Context) {
	uid, err := auth.PrincipalID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Screen == "" || req.Action == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "screen and action are required"})
		return
	}

	ip := c.ClientIP()
	ua := c.Request.UserAgent()
	if _, err := h.Activities.Log(c.Request.Context(), &uid, req.Action, req.Screen, req.Details, optional(ip), optional(ua)); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "activity write failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// pageParams applies the default pagination when limit/offset are missing or
// not numeric.
func pageParams(c *gin.Context) (limit, offset int) {
	limit = activity.DefaultLimit
	offset = 0
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
