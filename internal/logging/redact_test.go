package logging

import "testing"

func TestShouldMask(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"GITHUB_TOKEN", true},
		{"api_key", true},
		{"db_password", true},
		{"oauth_token", true},
		{"title", false},
		{"link", false},
		{"path", false},
		{"collection", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := shouldMask(tt.key); got != tt.want {
				t.Errorf("shouldMask(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "********"},
		{"abcd", "********"},
		{"ghp_abcdef1234", "****1234"},
	}

	for _, tt := range tests {
		if got := maskValue(tt.value); got != tt.want {
			t.Errorf("maskValue(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestHasTokenPrefix(t *testing.T) {
	if !hasTokenPrefix("sk-live-1234") {
		t.Error("expected sk- prefix to be detected")
	}
	if hasTokenPrefix("https://example.com/sk-1") {
		t.Error("prefix must match at the start of the value")
	}
}
