package prerequisites

import (
	"errors"
	"testing"
)

func TestCheck_AllPassing(t *testing.T) {
	results := Check([]Requirement{
		{Name: "always-ok", Check: func() error { return nil }},
	})

	if len(results.Failed()) != 0 {
		t.Errorf("expected no failures, got %d", len(results.Failed()))
	}
	if err := results.Err(); err != nil {
		t.Errorf("expected nil summary error, got %v", err)
	}
}

func TestCheck_Failure(t *testing.T) {
	results := Check([]Requirement{
		{Name: "always-ok", Check: func() error { return nil }},
		{Name: "broken", Check: func() error { return errors.New("missing") }},
	})

	failed := results.Failed()
	if len(failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failed))
	}
	if failed[0].Requirement.Name != "broken" {
		t.Errorf("expected 'broken' to fail, got %q", failed[0].Requirement.Name)
	}

	err := results.Err()
	if err == nil {
		t.Fatal("expected summary error")
	}
}

func TestCheckAccessToken(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "missing", value: "", wantErr: true},
		{name: "valid", value: "ya29.token", wantErr: false},
		{name: "embedded whitespace", value: "ya29 token", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenEnvVar, tt.value)
			err := checkAccessToken()
			if (err != nil) != tt.wantErr {
				t.Errorf("checkAccessToken() with %q: error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
