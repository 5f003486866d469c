package common

import (
	"os"
	"strings"
)

// A host rule that is applied when using a certain host.
type HostRule struct {
	// The host that needs to match in order to use this rule.
	MatchHost string `json:"matchHost" yaml:"matchHost"`
	// The username to authenticate with the host.
	Username string `json:"username" yaml:"username"`
	// The password to authenticate with the host. Is expanded from environment variables.
	Password string `json:"password" yaml:"password"`
	// A token to authenticate with the host. Is expanded from environment variables.
	Token string `json:"token" yaml:"token"`
}

// Checks if the rule applies to the given host or url.
func (hr *HostRule) Matches(host string) bool {
	return hr.MatchHost != "" && strings.Contains(host, hr.MatchHost)
}

// Expands the username with environment variables.
func (hr *HostRule) UsernameExpanded() string {
	return os.ExpandEnv(hr.Username)
}

// Expands the password with environment variables.
func (hr *HostRule) PasswordExpanded() string {
	return os.ExpandEnv(hr.Password)
}

// Expands the token with environment variables.
func (hr *HostRule) TokenExpanded() string {
	return os.ExpandEnv(hr.Token)
}

// Returns the first rule that matches the given host.
func FindHostRule(hostRules []*HostRule, host string) *HostRule {
	for _, hostRule := range hostRules {
		if hostRule.Matches(host) {
			return hostRule
		}
	}
	return nil
}
