package config

import "testing"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ map[string]string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			environ: map[string]string{},
			check: func(t *testing.T, c Config) {
				if c.Level != "meadow" || c.Width != 1280 || c.Height != 720 || c.TPS != 60 {
					t.Fatalf("unexpected defaults %+v", c)
				}
				if c.Log.Level != "info" || c.Log.Format != "console" {
					t.Fatalf("unexpected log defaults %+v", c.Log)
				}
			},
		},
		{
			name:    "env",
			environ: map[string]string{"FOXTROT_LEVEL": "ridge", "FOXTROT_DEBUG": "true", "FOXTROT_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Level != "ridge" || !c.Debug || c.Log.Level != "debug" {
					t.Fatalf("env not applied: %+v", c)
				}
			},
		},
		{
			name:    "flags_override_env",
			args:    []string{"-level", "well", "-dev", "-log-level", "warn"},
			environ: map[string]string{"FOXTROT_LEVEL": "ridge", "FOXTROT_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Level != "well" || !c.Dev || c.Log.Level != "warn" {
					t.Fatalf("flags did not win: %+v", c)
				}
			},
		},
		{
			name:    "bad_env_value",
			environ: map[string]string{"FOXTROT_WIDTH": "wide"},
			wantErr: true,
		},
		{
			name:    "invalid_size",
			environ: map[string]string{"FOXTROT_HEIGHT": "0"},
			wantErr: true,
		},
		{
			name:    "unknown_flag",
			args:    []string{"-fly"},
			environ: map[string]string{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(tc.args, tc.environ)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tc.check(t, c)
		})
	}
}
