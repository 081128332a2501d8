package registry

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/docker/cli/cli/config"
	"github.com/docker/cli/cli/config/configfile"
	"github.com/docker/cli/cli/config/types"
)

// Docker Hub credentials are stored under the legacy index server key
const dockerIndexServer = "https://index.docker.io/v1/"

// Host extracts the registry host out of a registry prefix like
// `ghcr.io/my-org`, mapped to the address docker stores credentials under.
func Host(registry string) string {
	host := registry
	if i := strings.Index(registry, "/"); i >= 0 {
		host = registry[:i]
	}

	if host == "docker.io" || host == "index.docker.io" || host == "registry-1.docker.io" {
		return dockerIndexServer
	}

	return host
}

// NewConfigFile builds a docker config file with a single auth entry
func NewConfigFile(registryHost, username, password string) *configfile.ConfigFile {
	configFile := configfile.New("")

	configFile.AuthConfigs = map[string]types.AuthConfig{
		registryHost: {
			Username: username,
			Password: password,
			Auth:     "",
		},
	}

	return configFile
}

// HasCredentials reports whether the docker config carries an auth entry
// for the registry prefix
func HasCredentials(configFile *configfile.ConfigFile, registry string) bool {
	if configFile == nil {
		return false
	}

	auth, err := configFile.GetAuthConfig(Host(registry))
	if err != nil {
		return false
	}

	return auth.Username != "" || auth.Auth != "" || auth.IdentityToken != ""
}

// WarnIfMissingCredentials logs a warning when the local docker config has
// no credentials for the registry the image is about to be pushed to. The
// push still proceeds, docker owns authentication.
func WarnIfMissingCredentials(registry string) {
	configFile := config.LoadDefaultConfigFile(os.Stderr)

	if !HasCredentials(configFile, registry) {
		log.Warnf("No docker credentials found for `%s`. The push will rely on ambient registry auth", Host(registry))
	}
}
