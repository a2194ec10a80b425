package config

// GetClientConfig assembles the vaultctl configuration from environment
// variables only — the client binary keeps its flag namespace for commands,
// not settings. Missing values fall back to local-development defaults.
func GetClientConfig() (Client, error) {
	cfg := &StructuredConfig{}
	if err := parseEnv(cfg); err != nil {
		return Client{}, err
	}

	client := cfg.Client
	if client.ServerURL == "" {
		client.ServerURL = "http://localhost:8080"
	}
	if client.CacheFile == "" {
		client.CacheFile = "credvault-cache.db"
	}
	if client.Timeout == 0 {
		client.Timeout = defaultTimeout
	}

	return client, nil
}
