// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "hopelink/cli/internal/errors"
	"hopelink/cli/internal/session"
)

// loginPath is the admin sign-in endpoint.
const loginPath = "/api/admin/login"

// loginData mirrors the login response payload. The backend historically
// duplicates the token both at the top level and inside the user object;
// either location is accepted, and the token is kept exactly once.
type loginData struct {
	User struct {
		ID              string `json:"id"`
		Email           string `json:"email"`
		Name            string `json:"name"`
		DisplayInitials string `json:"displayInitials"`
		Role            string `json:"role"`
		Token           string `json:"token"`
	} `json:"user"`
	Token string `json:"token"`
}

// AdminLogin exchanges credentials for a user profile and bearer token.
// A rejected login yields a Credential error carrying the server's message
// when one is provided; transport failures yield a Network error. The call
// implements session.Authenticator.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (session.User, string, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return session.User{}, "", err
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return session.User{}, "", apperrors.Wrap(apperrors.Unexpected, "decode login response", err)
		}
		return session.User{}, "", apperrors.New(apperrors.Credential, "")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return session.User{}, "", apperrors.New(apperrors.Credential, strings.TrimSpace(env.Message))
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return session.User{}, "", apperrors.Wrap(apperrors.Unexpected, "decode login data", err)
	}

	token := data.Token
	if token == "" {
		token = data.User.Token
	}
	if token == "" {
		return session.User{}, "", apperrors.New(apperrors.Unexpected, "login response carried no token")
	}

	u := session.User{
		ID:              data.User.ID,
		Email:           data.User.Email,
		Name:            data.User.Name,
		DisplayInitials: data.User.DisplayInitials,
		Role:            session.Role(data.User.Role),
	}
	if u.DisplayInitials == "" {
		u.DisplayInitials = deriveInitials(u.Name, u.Email)
	}
	return u, token, nil
}

// deriveInitials builds the two-letter display initials shown in the
// dashboard header when the backend did not provide them.
func deriveInitials(name, email string) string {
	src := strings.TrimSpace(name)
	if src == "" {
		src = email
	}
	if src == "" {
		return ""
	}
	parts := strings.Fields(src)
	if len(parts) >= 2 {
		return strings.ToUpper(fmt.Sprintf("%c%c", rune(parts[0][0]), rune(parts[1][0])))
	}
	r := []rune(parts[0])
	if len(r) >= 2 {
		return strings.ToUpper(string(r[:2]))
	}
	return strings.ToUpper(string(r))
}
