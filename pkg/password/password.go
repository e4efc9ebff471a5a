package password

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for every stored credential.
const Cost = 10

var ErrMismatch = errors.New("password mismatch")

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks presented against a stored credential. Legacy rows keep the
// initial password in plain text (isHashed == false) and are compared for
// equality; hashed rows only ever go through bcrypt.
func Verify(stored string, isHashed bool, presented string) error {
	if !isHashed {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1 {
			return nil
		}
		return ErrMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)); err != nil {
		return ErrMismatch
	}
	return nil
}
