package service

import (
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type TOTPProvider struct {
	Issuer string
}

// GenerateSecret returns a fresh TOTP secret together with its otpauth
// provisioning URL for the given account. Generation only; enabling
// two-factor never validates a code against the secret.
func (p TOTPProvider) GenerateSecret(account string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer(),
		AccountName: account,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func (p TOTPProvider) issuer() string {
	if strings.TrimSpace(p.Issuer) == "" {
		return "Coinfolio"
	}
	return p.Issuer
}
