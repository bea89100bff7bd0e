package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"activity-platform/internal/auth"
	"activity-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ActionLogin marks records written by the login interceptor.
	ActionLogin = "LOGIN"
	// LoginScreen is the fixed screen for recorded logins.
	LoginScreen = "users-login"
	// RootScreen is used when the sanitized path comes out empty.
	RootScreen = "root"
)

// TokenDecoder is the minimal verification capability tracking needs.
// *auth.Manager satisfies it.
type TokenDecoder interface {
	Verify(token string, now time.Time) (auth.Claims, error)
}

// observation snapshots the request before any downstream handler can rewrite
// path or body.
type observation struct {
	Method    string
	EntryPath string
	IP        string
	UserAgent string
	RawToken  string
}

func observe(c *gin.Context) observation {
	return observation{
		Method:    c.Request.Method,
		EntryPath: c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RawToken:  auth.BearerToken(c.GetHeader("Authorization")),
	}
}

// Tracker observes every request and, once the response has been written,
// records an activity for authenticated non-login requests. It never rejects
// a request and never lets a tracking failure reach the client; that is the
// guard's job, not this middleware's.
func Tracker(rec *Recorder, dec TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		obs := observe(c)

		var reqBody []byte
		if recordsBody(obs.Method) {
			reqBody = bufferRequestBody(c)
		}

		// Best-effort identity: any verification failure degrades to anonymous.
		var userID string
		if obs.RawToken != "" {
			if claims, err := dec.Verify(obs.RawToken, time.Now()); err == nil {
				userID = claims.PrincipalID()
			}
		}
		if userID != "" {
			c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), userID))
			c.Set("user_id", userID)
		}

		c.Next()

		// Response fully written. Nothing below may alter it.
		trackFinished(c, rec, obs, reqBody, userID)
	}
}

func trackFinished(c *gin.Context, rec *Recorder, obs observation, reqBody []byte, userID string) {
	log := logger.FromGin(c)
	defer func() {
		if p := recover(); p != nil {
			log.Error("activity tracking failed", "panic", p)
		}
	}()

	finalPath := c.Request.URL.Path

	// Logins are recorded by LoginTracker, which can see the issued token.
	if isLoginRoute(obs.Method, obs.EntryPath) || isLoginRoute(obs.Method, finalPath) {
		return
	}
	if userID == "" {
		return
	}

	details := summarize(obs, finalPath, reqBody)
	detached := context.WithoutCancel(c.Request.Context())
	logAsync(detached, log, rec, &userID, obs.Method, Screen(finalPath), &details,
		optional(obs.IP), optional(obs.UserAgent))
}

// summarize builds the details field: a plain one-liner for side-effect-free
// methods, a JSON payload including the request body for everything else.
func summarize(obs observation, path string, body []byte) string {
	if !recordsBody(obs.Method) {
		return obs.Method + " " + path
	}

	payload := struct {
		Method       string          `json:"method"`
		Path         string          `json:"path"`
		OriginalPath string          `json:"originalPath,omitempty"`
		Body         json.RawMessage `json:"body,omitempty"`
	}{Method: obs.Method, Path: path}

	if path != obs.EntryPath {
		payload.OriginalPath = obs.EntryPath
	}
	if len(body) > 0 {
		if json.Valid(body) {
			payload.Body = body
		} else {
			quoted, _ := json.Marshal(string(body))
			payload.Body = quoted
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return obs.Method + " " + path
	}
	return string(b)
}

// bodyCaptureWriter tees the outgoing response body so the login interceptor
// can inspect it after the handler runs. Bytes reach the client unchanged.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// LoginTracker wraps only the login route. When the outgoing body carries a
// verifiable token it records a LOGIN activity for that token's principal.
// The response is always forwarded untouched, whatever happens here.
func LoginTracker(rec *Recorder, dec TokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := bufferRequestBody(c)

		cw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = cw

		c.Next()

		recordLogin(c, rec, dec, reqBody, cw.buf.Bytes())
	}
}

func recordLogin(c *gin.Context, rec *Recorder, dec TokenDecoder, reqBody, respBody []byte) {
	log := logger.FromGin(c)
	defer func() {
		if p := recover(); p != nil {
			log.Error("login tracking failed", "panic", p)
		}
	}()

	var resp struct {
		Token string `json:"token"`
	}
	// Malformed or token-less bodies mean a failed login; nothing to record.
	if err := json.Unmarshal(respBody, &resp); err != nil || resp.Token == "" {
		return
	}

	now := time.Now()
	claims, err := dec.Verify(resp.Token, now)
	if err != nil {
		return
	}
	userID := claims.PrincipalID()

	var req struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(reqBody, &req)

	payload := struct {
		Email     string `json:"email,omitempty"`
		Timestamp string `json:"timestamp"`
		IPAddress string `json:"ipAddress,omitempty"`
		UserAgent string `json:"userAgent,omitempty"`
	}{
		Email:     req.Email,
		Timestamp: now.UTC().Format(time.RFC3339),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	details := string(b)

	detached := context.WithoutCancel(c.Request.Context())
	logAsync(detached, log, rec, &userID, ActionLogin, LoginScreen, &details,
		optional(payload.IPAddress), optional(payload.UserAgent))
}

// logAsync is the fire-and-forget persistence path. The request cycle never
// joins it; failures surface only in logs.
func logAsync(ctx context.Context, log *slog.Logger, rec *Recorder, userID *string, action, screen string, details, ip, ua *string) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				log.Error("activity write panicked", "panic", p)
			}
		}()
		if _, err := rec.Log(ctx, userID, action, screen, details, ip, ua); err != nil {
			log.Error("activity write failed", "action", action, "screen", screen, "err", err)
		}
	}()
}

// Screen converts a request path to its audit label:
// "/api/users/profile" -> "users-profile"; "/api" and "/api/" -> "root".
func Screen(path string) string {
	p := strings.TrimPrefix(path, "/api")
	p = strings.TrimPrefix(p, "/")
	p = strings.ReplaceAll(p, "/", "-")
	if p == "" {
		return RootScreen
	}
	return p
}

func isLoginRoute(method, path string) bool {
	if method != http.MethodPost {
		return false
	}
	path = strings.TrimSuffix(path, "/")
	return strings.HasSuffix(path, "/users/login") || strings.HasSuffix(path, "/auth/login")
}

// recordsBody reports whether the method's request body belongs in details.
func recordsBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// bufferRequestBody reads and restores the request body so both tracking and
// downstream binding can consume it.
func bufferRequestBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
