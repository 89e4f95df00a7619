// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curatorhq/curator/internal/models"
)

// TokenInfo is the payload returned by VerifyToken for a valid token.
type TokenInfo struct {
	Subject   string     `json:"subject"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// VerifyToken serves POST /api/v1/auth/verify. It checks the bearer
// token against the configured HMAC secret and reports its claims.
// Tokens are issued by the external auth provider; this endpoint only
// lets clients confirm a token is still accepted here.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Missing bearer token", nil)
		return
	}
	secret := h.cfg.Auth.JWTSecret
	if secret == "" {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Token verification is not configured", nil)
		return
	}

	token, err := jwt.Parse(auth[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Invalid or expired token", nil)
		return
	}

	info := TokenInfo{}
	if sub, err := token.Claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := token.Claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = &iat.Time
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = &exp.Time
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     info,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}, map[string]string{"Cache-Control": "no-store"})
}
