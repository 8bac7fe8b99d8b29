// Package identity verifies bearer credentials issued by the external
// identity provider. Tokens are RS256 ID tokens; the provider's signing
// certificates are fetched over HTTP and cached per their Cache-Control
// max-age. This package never issues credentials.
package identity

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrExpiredToken = errors.New("expired identity token")
)

// Identity is the verified subject a token resolves to.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

// Verifier validates a raw bearer credential and yields the subject behind it.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// TokenVerifier checks RS256 ID tokens against the provider's published
// X.509 certificates.
type TokenVerifier struct {
	projectID string
	issuer    string
	certsURL  string

	httpClient *http.Client

	mu          sync.RWMutex
	certs       map[string]string // kid -> PEM certificate
	certsExpiry time.Time
}

func NewTokenVerifier(projectID, issuer, certsURL string) *TokenVerifier {
	return &TokenVerifier{
		projectID: projectID,
		issuer:    issuer,
		certsURL:  certsURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify parses and validates rawToken, returning the identity it asserts.
func (v *TokenVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("token missing kid header")
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	subject := claims.Subject
	if subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return &Identity{
		SubjectID: subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
	}, nil
}

// publicKey resolves a signing certificate by kid, refreshing the cached cert
// set when it is stale or the kid is unknown (key rotation).
func (v *TokenVerifier) publicKey(ctx context.Context, kid string) (interface{}, error) {
	v.mu.RLock()
	certPEM, ok := v.certs[kid]
	fresh := time.Now().Before(v.certsExpiry)
	v.mu.RUnlock()

	if !ok || !fresh {
		if err := v.refreshCerts(ctx); err != nil {
			return nil, err
		}
		v.mu.RLock()
		certPEM, ok = v.certs[kid]
		v.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("no certificate for kid %q", kid)
		}
	}

	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("malformed certificate for kid %q", kid)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	return cert.PublicKey, nil
}

// refreshCerts fetches the provider's current certificate set and caches it
// for the duration advertised in the response's Cache-Control max-age.
func (v *TokenVerifier) refreshCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch signing certs: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read certs response: %w", err)
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("decode certs response: %w", err)
	}

	ttl := parseMaxAge(resp.Header.Get("Cache-Control"))

	v.mu.Lock()
	v.certs = certs
	v.certsExpiry = time.Now().Add(ttl)
	v.mu.Unlock()
	return nil
}

// parseMaxAge extracts max-age from a Cache-Control header, falling back to a
// conservative TTL when the directive is missing or unreadable.
func parseMaxAge(header string) time.Duration {
	const fallback = 5 * time.Minute

	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || seconds <= 0 {
			return fallback
		}
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
