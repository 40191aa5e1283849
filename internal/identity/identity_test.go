package identity

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		flag, env string
		want      string
	}{
		{"flag wins", "alice", "bob", "alice"},
		{"env fallback", "", "bob", "bob"},
		{"blank flag", "   ", "bob", "bob"},
		{"trimmed", " alice ", "", "alice"},
		{"anonymous", "", "", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.flag, tt.env); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}

func TestIsAnonymous(t *testing.T) {
	if !IsAnonymous(Resolve("", "")) {
		t.Error("empty identity should be anonymous")
	}
	if IsAnonymous("alice") {
		t.Error("alice is not anonymous")
	}
}
