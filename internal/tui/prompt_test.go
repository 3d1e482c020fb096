package tui

import "testing"

func TestShouldPromptInCI(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"generic CI", "CI", "true"},
		{"GitHub Actions", "GITHUB_ACTIONS", "true"},
		{"GitLab CI", "GITLAB_CI", "true"},
		{"Jenkins", "JENKINS_URL", "http://jenkins.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)
			if ShouldPrompt() {
				t.Errorf("ShouldPrompt() = true with %s set", tt.envVar)
			}
		})
	}
}

func TestIsInteractiveDoesNotPanic(t *testing.T) {
	// The result depends on how the tests are run; under `go test` stdin
	// is usually not a terminal.
	_ = IsInteractive()
}

// PromptForString and PromptForConfirmation drive a real terminal form and
// are exercised manually; there is no stdin to script here.
