// Package identity turns an identity-provider credential into a models.User.
//
// The credential is a JWT issued by the provider. Its payload is decoded for
// display only; the signature is never checked here because the backend
// verifies the raw token on every request.
package identity

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthEndpoint is the provider's authorization URL.
const AuthEndpoint = "https://accounts.google.com/o/oauth2/v2/auth"

// ErrMissingClientID means sign-in is not configured.
var ErrMissingClientID = errors.New("google client id missing: set EXPENSES_GOOGLE_CLIENT_ID in .env")

var ErrEmptyCredential = errors.New("empty credential")

// Claims are the display fields read from the credential payload.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Adapter struct {
	clientID    string
	redirectURL string
	parser      *jwt.Parser
}

// New returns an adapter for clientID. redirectURL is where the provider
// sends the credential after sign-in.
func New(clientID, redirectURL string) *Adapter {
	return &Adapter{
		clientID:    strings.TrimSpace(clientID),
		redirectURL: redirectURL,
		parser:      jwt.NewParser(),
	}
}

func (a *Adapter) Configured() bool {
	return a.clientID != ""
}

// Target is the URL a user opens to obtain a credential.
func (a *Adapter) Target() (string, error) {
	if !a.Configured() {
		return "", ErrMissingClientID
	}

	q := url.Values{}
	q.Set("client_id", a.clientID)
	q.Set("response_type", "id_token")
	q.Set("scope", "openid email profile")
	q.Set("nonce", uuid.NewString())
	if a.redirectURL != "" {
		q.Set("redirect_uri", a.redirectURL)
	}
	return AuthEndpoint + "?" + q.Encode(), nil
}

// SignIn builds the user for a raw credential. Name falls back to
// models.PlaceholderName; the raw credential becomes the bearer token.
func (a *Adapter) SignIn(credential string) (models.User, error) {
	if !a.Configured() {
		return models.User{}, ErrMissingClientID
	}

	credential = strings.TrimSpace(credential)
	if credential == "" {
		return models.User{}, ErrEmptyCredential
	}

	claims := a.DecodeClaims(credential)

	name := claims.Name
	if name == "" {
		name = models.PlaceholderName
	}
	return models.User{Name: name, Email: claims.Email, Token: credential}, nil
}

// DecodeClaims reads name and email from the token payload without
// verifying it. Anything unreadable yields empty claims.
func (a *Adapter) DecodeClaims(token string) Claims {
	mc := jwt.MapClaims{}
	if _, _, err := a.parser.ParseUnverified(token, mc); err == nil {
		return claimsFromMap(mc)
	}

	// Tolerate a malformed header as long as the payload itself decodes.
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return Claims{}
	}
	payload, err := a.parser.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}
	}
	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Claims{}
	}
	return c
}

func claimsFromMap(mc jwt.MapClaims) Claims {
	var c Claims
	if v, ok := mc["name"].(string); ok {
		c.Name = v
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	return c
}
