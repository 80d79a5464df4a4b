// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"folio/internal/auth"
	"folio/internal/models"
	"folio/internal/store"
)

// Auth groups authentication and profile HTTP handlers.
type Auth struct {
	tokens    *auth.TokenService
	userStore *store.UserStore
	issuer    string // TOTP issuer shown in authenticator apps
}

// NewAuth creates a new Auth handler group.
func NewAuth(tokens *auth.TokenService, userStore *store.UserStore, issuer string) *Auth {
	if issuer == "" {
		issuer = "folio"
	}
	return &Auth{tokens: tokens, userStore: userStore, issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials (and the TOTP code when 2FA is enabled)
// and returns a signed API token. Lookup and password failures share one
// error message so the endpoint does not confirm which emails exist.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.userStore.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		serverError(w, r, "login lookup failed", err)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		respondError(w, r, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(req.TOTPCode, *user.TOTPSecret) {
			respondError(w, r, http.StatusUnauthorized, "invalid two-factor code")
			return
		}
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		serverError(w, r, "token issue failed", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	respond(w, r, http.StatusOK, loginResponse{Token: token})
}

// Profile returns the authenticated user's account and public profile.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, user)
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	Website     string `json:"website"`
	GitHub      string `json:"github"`
	LinkedIn    string `json:"linkedin"`
}

// UpdateProfile replaces the authenticated user's public profile fields.
func (a *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		respondError(w, r, http.StatusBadRequest, "display_name is required")
		return
	}

	err := a.userStore.UpdateProfile(user.ID, strings.TrimSpace(req.DisplayName),
		req.Bio, req.Website, req.GitHub, req.LinkedIn)
	if err != nil {
		serverError(w, r, "profile update failed", err)
		return
	}

	updated, err := a.userStore.FindByID(user.ID)
	if err != nil {
		serverError(w, r, "profile reload failed", err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

type totpSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRPNG  string `json:"qr_png"` // base64-encoded PNG of the otpauth URL
}

// SetupTOTP generates a fresh TOTP secret for the authenticated user and
// returns it with a QR code for authenticator apps. 2FA stays disabled
// until VerifyTOTP confirms the user scanned the secret.
func (a *Auth) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		serverError(w, r, "totp generate failed", err)
		return
	}

	if err := a.userStore.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		serverError(w, r, "totp secret save failed", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		serverError(w, r, "qr encode failed", err)
		return
	}

	respond(w, r, http.StatusOK, totpSetupResponse{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRPNG:  base64.StdEncoding.EncodeToString(png),
	})
}

type totpVerifyRequest struct {
	Code string `json:"code"`
}

// VerifyTOTP checks a code against the pending secret and enables 2FA.
func (a *Auth) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}

	var req totpVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if user.TOTPSecret == nil {
		respondError(w, r, http.StatusBadRequest, "run 2FA setup first")
		return
	}
	if !totp.Validate(req.Code, *user.TOTPSecret) {
		respondError(w, r, http.StatusBadRequest, "invalid code")
		return
	}

	if err := a.userStore.EnableTOTP(user.ID); err != nil {
		serverError(w, r, "totp enable failed", err)
		return
	}

	slog.Info("2fa enabled", "user_id", user.ID)
	respond(w, r, http.StatusOK, map[string]bool{"enabled": true})
}

// currentUser loads the authenticated user from the token claims. A
// token whose user no longer exists is rejected.
func (a *Auth) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, "invalid token")
		return nil, false
	}
	user, err := a.userStore.FindByID(id)
	if err != nil {
		serverError(w, r, "user lookup failed", err)
		return nil, false
	}
	if user == nil {
		respondError(w, r, http.StatusUnauthorized, "account no longer exists")
		return nil, false
	}
	return user, true
}
