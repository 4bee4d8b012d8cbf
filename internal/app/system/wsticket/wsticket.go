// Package wsticket mints short-lived signed tickets for the realtime push
// gateway. The gateway verifies a ticket before accepting a socket, so it
// never needs access to session cookies.
package wsticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const ticketName = "realtime-ticket"

// TTL is how long a minted ticket stays valid. Tickets are expected to be
// redeemed immediately after fetch, so this is deliberately tight.
const TTL = 30 * time.Second

var (
	// ErrExpired is returned when a ticket is structurally valid but stale.
	ErrExpired = errors.New("realtime ticket expired")
	// ErrInvalid is returned when a ticket fails signature verification.
	ErrInvalid = errors.New("realtime ticket invalid")
)

// Claims is the payload carried inside a signed ticket.
type Claims struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Nonce    string `json:"nonce"`
	IssuedAt int64  `json:"issuedAt"` // unix seconds
}

// Issuer signs and verifies realtime tickets.
type Issuer struct {
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewIssuer builds an Issuer from the shared signing key. The same key must
// be configured on the push gateway.
func NewIssuer(signingKey []byte) *Issuer {
	codec := securecookie.New(signingKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(TTL / time.Second))
	return &Issuer{codec: codec, now: time.Now}
}

// Mint returns a signed ticket string for the given user.
func (i *Issuer) Mint(userID, role string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Role:     role,
		Nonce:    uuid.NewString(),
		IssuedAt: i.now().Unix(),
	}
	return i.codec.Encode(ticketName, claims)
}

// Verify checks the ticket signature and freshness and returns its claims.
func (i *Issuer) Verify(ticket string) (Claims, error) {
	var claims Claims
	if err := i.codec.Decode(ticketName, ticket, &claims); err != nil {
		return Claims{}, ErrInvalid
	}
	if i.now().Sub(time.Unix(claims.IssuedAt, 0)) > TTL {
		return Claims{}, ErrExpired
	}
	return claims, nil
}
