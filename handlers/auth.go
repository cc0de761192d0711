package handlers

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skill-mint/auth-service/internal/config"
	"github.com/skill-mint/auth-service/internal/credentials"
	"github.com/skill-mint/auth-service/internal/errs"
	"github.com/skill-mint/auth-service/internal/models"
	"github.com/skill-mint/auth-service/internal/tokens"
	"github.com/skill-mint/auth-service/internal/users"
	"github.com/skill-mint/auth-service/pkg/logger"
	"github.com/skill-mint/auth-service/pkg/metrics"
	"github.com/skill-mint/auth-service/pkg/middleware"
)

// Same pattern the stored schema validates against.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register wires the auth routes under the configured prefix. normalLimit and
// strictLimit are optional rate limiters supplied by the bootstrap; which one
// guards /google-login is configuration, mirroring the two wirings the service
// has shipped with.
func (h *AuthHandler) Register(rg *gin.RouterGroup, normalLimit, strictLimit gin.HandlerFunc) {
	a := rg.Group(h.cfg.Auth.Prefix)

	login := make([]gin.HandlerFunc, 0, 3)
	if normalLimit != nil {
		login = append(login, normalLimit)
	}
	if h.cfg.Auth.GateLogin {
		login = append(login, middleware.SessionAuth(h.cfg.JWT.Secret))
	}
	login = append(login, h.Login)
	a.POST("/login", login...)

	googleLimit := normalLimit
	if h.cfg.RateLimit.GoogleStrict && strictLimit != nil {
		googleLimit = strictLimit
	}
	if googleLimit != nil {
		a.POST("/google-login", googleLimit, h.GoogleLogin)
	} else {
		a.POST("/google-login", h.GoogleLogin)
	}

	a.GET("/check", h.CheckSession)
	a.GET("/profile", middleware.SessionAuth(h.cfg.JWT.Secret), h.Profile)
}

// Login is the merged signup/login endpoint. The request chooses signup with
// an explicit newOne flag; existence of the record never decides the branch.
func (h *AuthHandler) Login(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		// An absent body is the same as an empty one: fall through so the
		// missing-credentials check answers, not a decode error.
		if !errors.Is(err, io.EOF) {
			respondCode(c, http.StatusBadRequest, errs.CodeValidation)
			return
		}
		raw = map[string]any{}
	}
	isSignup := raw["newOne"] == true

	clean := credentials.Sanitize(credentials.ParseUserData(raw))

	if clean.Email == "" || clean.Password == "" {
		metrics.AuthRequests.WithLabelValues("login", "missing_credentials").Inc()
		respondCode(c, http.StatusBadRequest, errs.CodeMissingCredentials)
		return
	}
	if !emailPattern.MatchString(clean.Email) {
		metrics.AuthRequests.WithLabelValues("login", "invalid_email").Inc()
		respondCode(c, http.StatusBadRequest, errs.CodeValidation)
		return
	}

	existing, err := h.usersSvc.FindUserByEmail(c.Request.Context(), clean.Email)
	if err != nil {
		h.respondFailure(c, "login", err)
		return
	}

	if isSignup {
		if existing != nil {
			metrics.AuthRequests.WithLabelValues("login", "duplicate").Inc()
			respondCode(c, http.StatusConflict, errs.CodeAlreadyRegistered)
			return
		}
		created, err := h.usersSvc.CreateUser(c.Request.Context(), clean)
		if err != nil {
			// A concurrent signup can lose the insert race after the lookup
			// above saw nothing; the unique index reports it as a duplicate.
			if code, ok := errs.CodeOf(err); ok && code == errs.CodeDuplicateKey {
				metrics.AuthRequests.WithLabelValues("login", "duplicate").Inc()
				respondCode(c, http.StatusConflict, code)
				return
			}
			h.respondFailure(c, "login", err)
			return
		}

		token, ok := h.issueSession(c, created)
		if !ok {
			return
		}
		metrics.AuthRequests.WithLabelValues("login", "signup_success").Inc()
		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Account created successfully",
			"data":    created.Public(),
			"token":   token,
		})
		return
	}

	if existing == nil {
		metrics.AuthRequests.WithLabelValues("login", "not_found").Inc()
		respondCode(c, http.StatusNotFound, errs.CodeEmailNotFound)
		return
	}
	if existing.Password != clean.Password {
		metrics.AuthRequests.WithLabelValues("login", "bad_password").Inc()
		respondCode(c, http.StatusUnauthorized, errs.CodeBadPassword)
		return
	}

	token, ok := h.issueSession(c, existing)
	if !ok {
		return
	}
	metrics.AuthRequests.WithLabelValues("login", "login_success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"email":       existing.Email,
			"name":        existing.Name,
			"loginMethod": existing.LoginMethod,
		},
		"token": token,
	})
}

// GoogleLogin upserts a Google-asserted identity. Unlike /login it never
// rejects an existing record; repeat sign-ins are the expected case.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req users.GoogleUserData
	if err := c.ShouldBindJSON(&req); err != nil {
		respondCode(c, http.StatusBadRequest, errs.CodeValidation)
		return
	}
	if req.Email == "" || req.GoogleID == "" {
		metrics.AuthRequests.WithLabelValues("google_login", "missing_fields").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"code":    errs.CodeMissingCredentials,
			"message": "Email and Google ID are required",
		})
		return
	}

	u, err := h.usersSvc.CreateOrUpdateGoogleUser(c.Request.Context(), req)
	if err != nil {
		h.respondFailure(c, "google_login", err)
		return
	}

	token, ok := h.issueSession(c, u)
	if !ok {
		return
	}
	metrics.AuthRequests.WithLabelValues("google_login", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Google login successful",
		"data":    u.Public(),
		"token":   token,
	})
}

// CheckSession reports whether the caller holds a valid session. It sits
// outside the session gate on purpose: every failure mode collapses into the
// same "not authenticated" body so this endpoint leaks nothing about why a
// token was rejected, and a storage outage degrades to the token's own claims
// instead of failing the request.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	raw, err := c.Cookie(middleware.CookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"loggedIn": false, "message": "Not authenticated"})
		return
	}

	claims, err := tokens.Verify(h.cfg.JWT.Secret, raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"loggedIn": false, "message": "Not authenticated"})
		return
	}

	// Refresh display attributes from the store; the token may predate a name
	// change and never carried one to begin with.
	var u *models.User
	if claims.Email != "" {
		u, _ = h.usersSvc.FindUserByEmail(c.Request.Context(), claims.Email)
	} else if claims.UserID != "" {
		u, _ = h.usersSvc.FindUserByID(c.Request.Context(), claims.UserID)
	}

	var userObj gin.H
	if u != nil {
		userObj = gin.H{"id": u.ID.Hex(), "email": u.Email, "name": u.Name}
	} else {
		userObj = gin.H{"id": claims.UserID, "email": claims.Email}
	}

	resp := gin.H{"loggedIn": true, "user": userObj}
	if decoded := tokens.Decode(raw); decoded != nil && decoded.ExpiresAt != nil {
		resp["expiresAt"] = decoded.ExpiresAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// Profile echoes the verified claims attached by the session gate.
func (h *AuthHandler) Profile(c *gin.Context) {
	v, ok := c.Get(middleware.ClaimsKey)
	if !ok {
		respondCode(c, http.StatusUnauthorized, errs.CodeTokenRequired)
		return
	}
	claims := v.(*tokens.SessionClaims)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": gin.H{
			"userId":      claims.UserID,
			"email":       claims.Email,
			"loginMethod": claims.LoginMethod,
		},
	})
}

// issueSession signs a session token over the record's identity claims and
// sets it as the auth cookie. Cookie max-age and token expiry come from the
// same TTL so neither can outlive the other.
func (h *AuthHandler) issueSession(c *gin.Context, u *models.User) (string, bool) {
	ttl := h.cfg.JWT.SessionTTL
	token, err := tokens.Generate(h.cfg.JWT.Secret, u.ID.Hex(), u.Email, u.LoginMethod, ttl)
	if err != nil {
		logger.Errorf("token generation failed: %v", err)
		respondCode(c, http.StatusInternalServerError, errs.CodeInternal)
		return "", false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	return token, true
}

// respondFailure maps a domain error onto the wire: coded failures keep their
// code, everything else becomes the generic internal code. Full detail stays
// in the server log and never reaches the client.
func (h *AuthHandler) respondFailure(c *gin.Context, handler string, err error) {
	logger.Errorf("%s error: %v", handler, err)
	metrics.AuthRequests.WithLabelValues(handler, "internal_error").Inc()
	if code, ok := errs.CodeOf(err); ok {
		respondCode(c, http.StatusInternalServerError, code)
		return
	}
	respondCode(c, http.StatusInternalServerError, errs.CodeInternal)
}

func respondCode(c *gin.Context, status int, code errs.Code) {
	c.JSON(status, gin.H{"status": "error", "code": code})
}
