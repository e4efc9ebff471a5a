package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session payload: the credential row plus the merged
// teacher or student profile fields. Admin sessions carry AdminID and a zero
// UserID, since the two id spaces overlap.
type Claims struct {
	UserID            uint        `json:"user_id"`
	AdminID           uint        `json:"admin_id,omitempty"`
	Role              entity.Role `json:"role"`
	SchoolID          *uint       `json:"school_id,omitempty"`
	SapID             string      `json:"sap_id,omitempty"`
	SchoolName        string      `json:"school_name,omitempty"`
	Email             string      `json:"email,omitempty"`
	FirstName         string      `json:"first_name,omitempty"`
	MiddleName        string      `json:"middle_name,omitempty"`
	LastName          string      `json:"last_name,omitempty"`
	Gender            string      `json:"gender,omitempty"`
	Birthday          string      `json:"birthday,omitempty"`
	ContactNumber     string      `json:"contact_number,omitempty"`
	AlternativeNumber string      `json:"alternative_number,omitempty"`
	PermanentAddress  string      `json:"permanent_address,omitempty"`
	City              string      `json:"city,omitempty"`
	State             string      `json:"state,omitempty"`
	FatherName        string      `json:"father_name,omitempty"`
	MotherName        string      `json:"mother_name,omitempty"`
	MentorID          *uint       `json:"mentor_id,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for iat, exp and validation.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

func (m *TokenManager) Issue(claims Claims) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject(claims),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func subject(claims Claims) string {
	if claims.AdminID != 0 {
		return "admin:" + strconv.FormatUint(uint64(claims.AdminID), 10)
	}
	return strconv.FormatUint(uint64(claims.UserID), 10)
}

func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apperror.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", apperror.ErrUnauthorized)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperror.ErrUnauthorized)
	}

	return claims, nil
}
