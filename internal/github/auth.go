package github

import (
	"os"
	"os/exec"
	"strings"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// ghAuthToken asks the gh CLI for its token (overridable in tests)
var ghAuthToken = func() (string, error) {
	output, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// ResolveToken picks the API token: the explicit flag value first, then the
// envVar environment variable, then the token of an authenticated gh CLI
func ResolveToken(flagToken, envVar string) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if envVar != "" {
		if token := os.Getenv(envVar); token != "" {
			return token, nil
		}
	}
	if token, err := ghAuthToken(); err == nil && token != "" {
		return token, nil
	}
	return "", models.ErrMissingToken
}
