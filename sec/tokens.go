package sec

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken wraps every reason an access token is refused
var ErrInvalidToken = errors.New("sec: invalid token")

// Claims of an access token. Subject is the decimal user id, ID the token id (jti).
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenConf is the "jwt" section of the core config
type TokenConf struct {
	Secret   string `json:"secret"`
	TTLHours int    `json:"ttl_hours"` // 0 = 24
}

// Issuer signs and verifies HS256 access tokens
type Issuer struct {
	Name   string
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// NewIssuer builds an Issuer for the app name from conf
func NewIssuer(name string, conf TokenConf) (*Issuer, error) {
	if len(conf.Secret) < 32 {
		return nil, errors.New("jwt secret must have at least 32 bytes")
	}
	ttl := time.Duration(conf.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Name: name, Secret: []byte(conf.Secret), TTL: ttl, Now: time.Now}, nil
}

func (i *Issuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// Issue signs a fresh token for the user
func (i *Issuer) Issue(userID int64, email, role string) (string, *Claims, error) {
	now := i.now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Name,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature, issuer and time claims of signed
func (i *Issuer) Parse(signed string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.Name),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	return claims, nil
}

func HashHexSHA256(data string) string {
	checksum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(checksum[:])
}
