package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// IDSuffixAlphabet is used for the random tail of record ids.
	IDSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	IDSuffixLength   = 9

	// InviteCodeAlphabet keeps invite codes readable when typed by hand.
	InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	InviteCodeLength   = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

func NewIDSuffix() (string, error) {
	return RandomString(IDSuffixLength, IDSuffixAlphabet)
}

func NewInviteCode() (string, error) {
	return RandomString(InviteCodeLength, InviteCodeAlphabet)
}

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
