package slack

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Environment keys holding the three parts of a webhook token
const (
	EnvTokenPartT = "SLACKMSG_TOKEN_TPART"
	EnvTokenPartB = "SLACKMSG_TOKEN_BPART"
	EnvTokenPartX = "SLACKMSG_TOKEN_XPART"
)

var tokenPattern = regexp.MustCompile(`(T[a-zA-Z0-9]{8})/(B[a-zA-Z0-9]{8})/([a-zA-Z0-9]{24})`)

// Token errors
var (
	ErrInvalidToken = errors.New("unable to parse text as a webhook token")
	ErrMissingEnv   = errors.New("unable to find values in environment")
)

// WebHookToken is the T/B/X path identifying an incoming webhook,
// e.g. T00000000/B00000000/XXXXXXXXXXXXXXXXXXXXXXXX.
type WebHookToken struct {
	partT, partB, partX string
}

// ParseWebHookToken finds a token anywhere in s, so a full webhook URL is accepted too.
func ParseWebHookToken(s string) (WebHookToken, error) {
	m := tokenPattern.FindStringSubmatch(s)
	if m == nil {
		return WebHookToken{}, errors.Wrapf(ErrInvalidToken, "%q", s)
	}
	return WebHookToken{partT: m[1], partB: m[2], partX: m[3]}, nil
}

// WebHookTokenFromEnv reads the token parts from the environment.
// All missing keys are reported at once.
func WebHookTokenFromEnv() (WebHookToken, error) {
	v := viper.New()
	keys := []string{EnvTokenPartT, EnvTokenPartB, EnvTokenPartX}
	var missing []string
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return WebHookToken{}, errors.Wrapf(err, "unable to bind env key %s", key)
		}
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return WebHookToken{}, errors.Wrapf(ErrMissingEnv, "keys: [%s]", strings.Join(missing, ", "))
	}
	return ParseWebHookToken(strings.Join([]string{
		v.GetString(EnvTokenPartT),
		v.GetString(EnvTokenPartB),
		v.GetString(EnvTokenPartX),
	}, "/"))
}

// PartT returns the team part.
func (t WebHookToken) PartT() string { return t.partT }

// PartB returns the bot part.
func (t WebHookToken) PartB() string { return t.partB }

// PartX returns the secret part.
func (t WebHookToken) PartX() string { return t.partX }

// IsZero reports whether the token is unset.
func (t WebHookToken) IsZero() bool { return t == WebHookToken{} }

func (t WebHookToken) String() string {
	return t.partT + "/" + t.partB + "/" + t.partX
}
