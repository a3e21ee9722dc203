package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose tags a token with the single operation it is valid for.
// Verification requires an exact purpose match, so a reset token can
// never confirm an email and an email-change token can never act as a
// bearer credential.
type Purpose string

const (
	PurposeConfirm     Purpose = "confirm"
	PurposeReset       Purpose = "reset"
	PurposeChangeEmail Purpose = "change_email"
	PurposeAPIAuth     Purpose = "api_auth"
)

// DefaultTTL applies to confirmation, reset and email-change tokens.
// API bearer tokens take an explicit caller-supplied TTL.
const DefaultTTL = time.Hour

// ErrInvalid covers every verification failure: bad signature,
// expired, wrong purpose, malformed. Callers cannot distinguish an
// attack from an expired link, deliberately.
var ErrInvalid = errors.New("invalid token")

// ErrNoSecret is returned when an Authenticator is constructed without
// a signing secret. This is the one startup-fatal condition.
var ErrNoSecret = errors.New("signing secret is required")

// Claims is the verified payload of a token.
type Claims struct {
	UserID uuid.UUID
	Extra  map[string]string
}

// Authenticator issues and verifies purpose-tagged HS256 tokens keyed
// by a single process-wide secret. Tokens carry their own expiration;
// verification needs no server-side state and does not consume the
// token.
type Authenticator struct {
	secret []byte
}

func New(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Issue signs a token for userID valid for ttl. Extra claims ride
// along verbatim and come back from Verify.
func (a *Authenticator) Issue(purpose Purpose, userID uuid.UUID, extra map[string]string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": string(purpose),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if len(extra) > 0 {
		claims["extra"] = extra
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(a.secret)
}

// Verify checks signature, expiration and purpose. Any failure,
// including garbage input, yields ErrInvalid.
func (a *Authenticator) Verify(tokenStr string, expected Purpose) (*Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	purpose, _ := claims["purpose"].(string)
	if Purpose(purpose) != expected {
		return nil, ErrInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrInvalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalid
	}

	out := &Claims{UserID: userID}
	if raw, ok := claims["extra"].(map[string]any); ok {
		out.Extra = make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				out.Extra[k] = s
			}
		}
	}
	return out, nil
}
