package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"codeTTL":      "2m",
			"storeTimeout": "3s",
		},
		"mail": map[string]any{
			"smtp": map[string]any{
				"host": "",
			},
		},
		"pubsub": map[string]any{
			"topicUrl": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_CODETTL", want: "auth.codeTTL"},
		{envKey: "AUTH_STORETIMEOUT", want: "auth.storeTimeout"},
		{envKey: "MAIL_SMTP_HOST", want: "mail.smtp.host"},
		{envKey: "PUBSUB_TOPICURL", want: "pubsub.topicUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
