package types

// Credential is the GitHub OAuth App client id/secret pair sent as HTTP basic
// authentication on every upstream call.
type Credential struct {
	ClientID     string
	ClientSecret string `masq:"secret"`
}

// IsSet reports whether either half of the pair was configured
func (c Credential) IsSet() bool {
	return c.ClientID != "" || c.ClientSecret != ""
}
