package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

var ErrIncompleteCredentials = errors.New("missing jira credentials")

type JiraCredentials struct {
	Domain     string
	Email      string
	APIToken   string
	OAuthToken string
}

// Complete reports whether the credentials can authenticate a request:
// either an OAuth access token or an email/API token pair, plus the domain.
func (c JiraCredentials) Complete() bool {
	if strings.TrimSpace(c.Domain) == "" {
		return false
	}
	if strings.TrimSpace(c.OAuthToken) != "" {
		return true
	}
	return strings.TrimSpace(c.Email) != "" && strings.TrimSpace(c.APIToken) != ""
}

func (c JiraCredentials) Validate() error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}
	return nil
}

// LoadCredentials reads the JIRA_* keys of an env file.
func LoadCredentials(path string) (JiraCredentials, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return JiraCredentials{}, err
	}

	return JiraCredentials{
		Domain:     values["JIRA_DOMAIN"],
		Email:      values["JIRA_EMAIL"],
		APIToken:   values["JIRA_API_TOKEN"],
		OAuthToken: values["JIRA_OAUTH_TOKEN"],
	}, nil
}

// SaveCredentials writes the credentials into the env file at path, keeping
// any other keys already present.
func SaveCredentials(path string, creds JiraCredentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	values := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		existing, readErr := godotenv.Read(path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		values = existing
	}

	values["JIRA_DOMAIN"] = strings.TrimSpace(creds.Domain)
	setOrDelete(values, "JIRA_EMAIL", creds.Email)
	setOrDelete(values, "JIRA_API_TOKEN", creds.APIToken)
	setOrDelete(values, "JIRA_OAUTH_TOKEN", creds.OAuthToken)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	return godotenv.Write(values, path)
}

func setOrDelete(values map[string]string, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(values, key)
		return
	}
	values[key] = value
}
