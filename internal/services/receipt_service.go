package services

import (
	"errors"
	"fmt"
	"time"

	"busdepot/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const receiptTTL = 15 * time.Minute

// Receipt confirms that a registration was stored. It is carried on the
// /thanku redirect so the page can say what was saved; it grants nothing.
type Receipt struct {
	Kind     domain.Kind
	Key      string
	IssuedAt time.Time
}

type receiptClaims struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
	jwt.RegisteredClaims
}

type ReceiptService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewReceiptService(secret string) *ReceiptService {
	return &ReceiptService{secret: []byte(secret), ttl: receiptTTL, now: time.Now}
}

func (s *ReceiptService) Issue(kind domain.Kind, key string) (string, error) {
	now := s.now()
	claims := receiptClaims{
		Kind: string(kind),
		Key:  key,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign receipt: %w", err)
	}
	return signed, nil
}

func (s *ReceiptService) Verify(token string) (Receipt, error) {
	if token == "" {
		return Receipt{}, errors.New("empty receipt")
	}

	var claims receiptClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Receipt{}, fmt.Errorf("verify receipt: %w", err)
	}

	kind, err := domain.ParseKind(claims.Kind)
	if err != nil {
		return Receipt{}, fmt.Errorf("verify receipt: %w", err)
	}

	r := Receipt{Kind: kind, Key: claims.Key}
	if claims.IssuedAt != nil {
		r.IssuedAt = claims.IssuedAt.Time
	}
	return r, nil
}
