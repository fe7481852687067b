package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/houseping/internal/apipaths"
	"github.com/houseping/internal/config"
	"github.com/houseping/internal/constants"
	"github.com/houseping/internal/domain"
)

// GoogleUserInfoURL is Google's OpenID Connect userinfo endpoint
const GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// maxProfileBytes caps how much of a userinfo response is read
const maxProfileBytes = 1 << 20

var defaultScopes = []string{"openid", "email", "profile"}

// Provider is one identity provider's OAuth2 client configuration
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// GetClients builds the Google and CSH clients. Redirect URIs are derived from the
// externally visible base URL so they match what is registered with each provider.
func GetClients(cfg *config.Config) (googleClient, cshClient *Provider) {
	googleClient = &Provider{
		Name: constants.ProviderGoogle,
		Config: &oauth2.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL(cfg, constants.ProviderGoogle),
			Scopes:       defaultScopes,
		},
		UserInfoURL: GoogleUserInfoURL,
	}

	issuer := strings.TrimSuffix(cfg.OAuth.CSHIssuerURL, "/")
	cshClient = &Provider{
		Name: constants.ProviderCSH,
		Config: &oauth2.Config{
			ClientID:     cfg.OAuth.CSH.ClientID,
			ClientSecret: cfg.OAuth.CSH.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "/protocol/openid-connect/auth",
				TokenURL: issuer + "/protocol/openid-connect/token",
			},
			RedirectURL: redirectURL(cfg, constants.ProviderCSH),
			Scopes:      defaultScopes,
		},
		UserInfoURL: issuer + "/protocol/openid-connect/userinfo",
	}

	return googleClient, cshClient
}

func redirectURL(cfg *config.Config, provider string) string {
	return cfg.RedirectBase() + apipaths.Callback(provider)
}

// Configured reports whether client credentials were supplied
func (p *Provider) Configured() bool {
	return p != nil && p.Config != nil && p.Config.ClientID != ""
}

// AuthCodeURL returns the provider login URL carrying state and the PKCE S256 challenge for verifier
func (p *Provider) AuthCodeURL(state, verifier string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
}

// Exchange trades an authorization code for a token
func (p *Provider) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	token, err := p.Config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, domain.WrapOAuthExchangeFailed(p.Name, err)
	}
	return token, nil
}

// userInfo is the subset of the OpenID Connect userinfo claims we read
type userInfo struct {
	Subject           string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Picture           string `json:"picture"`
}

// FetchProfile calls the userinfo endpoint with the token and maps the claims to an Identity
func (p *Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, domain.WrapOAuthExchangeFailed(p.Name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, domain.WrapOAuthExchangeFailed(p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.WrapOAuthExchangeFailed(p.Name, fmt.Errorf("userinfo returned status %d", resp.StatusCode))
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&info); err != nil {
		return nil, domain.WrapOAuthExchangeFailed(p.Name, fmt.Errorf("failed to decode userinfo: %w", err))
	}

	if strings.TrimSpace(info.Subject) == "" {
		return nil, domain.NewDomainError(domain.ErrProfileInvalid.Code, domain.ErrProfileInvalid.Message,
			errors.New("userinfo response has no subject"))
	}

	username := info.PreferredUsername
	if username == "" {
		username = info.Email
	}
	if username == "" {
		username = info.Subject
	}

	return &domain.Identity{
		Provider: p.Name,
		Subject:  info.Subject,
		Username: username,
		Name:     info.Name,
		Email:    info.Email,
		Picture:  info.Picture,
	}, nil
}

// Providers looks up configured identity providers by name
type Providers map[string]*Provider

// NewProviders indexes providers by name
func NewProviders(providers ...*Provider) Providers {
	registry := make(Providers, len(providers))
	for _, p := range providers {
		if p != nil {
			registry[p.Name] = p
		}
	}
	return registry
}

// Get returns the named provider, or a not-found error for unknown names and
// an upstream error for providers without credentials
func (p Providers) Get(name string) (*Provider, error) {
	provider, ok := p[name]
	if !ok {
		return nil, domain.WrapProviderUnknown(name)
	}
	if !provider.Configured() {
		return nil, domain.ErrProviderNotConfigured
	}
	return provider, nil
}

// NewState returns a random URL-safe login state value
func NewState() (string, error) {
	b := securecookie.GenerateRandomKey(32)
	if b == nil {
		return "", errors.New("failed to generate random state")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewVerifier returns a PKCE code verifier
func NewVerifier() string {
	return oauth2.GenerateVerifier()
}
