package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "jobfeed"

	EnvAccessKey       = "ACCESS_KEY"
	EnvSecretAccessKey = "SECRET_ACCESS_KEY"

	accessKeyAccount = "jobfeed:aws:access_key"
	secretKeyAccount = "jobfeed:aws:secret_access_key"
)

type AWSCredentials struct {
	AccessKey       string
	SecretAccessKey string
}

// LoadAWSCredentials resolves the upload credentials: a .env file if one
// is present, then the process environment, then the OS keychain.
func LoadAWSCredentials() (AWSCredentials, error) {
	_ = godotenv.Load() // .env is optional

	ak := strings.TrimSpace(os.Getenv(EnvAccessKey))
	sk := strings.TrimSpace(os.Getenv(EnvSecretAccessKey))

	if ak == "" {
		ak = fromKeyring(accessKeyAccount)
	}
	if sk == "" {
		sk = fromKeyring(secretKeyAccount)
	}

	if ak == "" || sk == "" {
		return AWSCredentials{}, errors.New(
			"AWS credentials not found (set ACCESS_KEY and SECRET_ACCESS_KEY, or store them in the keychain)")
	}
	return AWSCredentials{AccessKey: ak, SecretAccessKey: sk}, nil
}

func fromKeyring(account string) string {
	v, err := keyring.Get(KeyringService, account)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func SetAWSCredentials(c AWSCredentials) error {
	if strings.TrimSpace(c.AccessKey) == "" || strings.TrimSpace(c.SecretAccessKey) == "" {
		return errors.New("access key and secret access key are both required")
	}
	if err := keyring.Set(KeyringService, accessKeyAccount, c.AccessKey); err != nil {
		return err
	}
	return keyring.Set(KeyringService, secretKeyAccount, c.SecretAccessKey)
}

func DeleteAWSCredentials() error {
	if err := keyring.Delete(KeyringService, accessKeyAccount); err != nil {
		return err
	}
	return keyring.Delete(KeyringService, secretKeyAccount)
}
