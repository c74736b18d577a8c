package yamlutil_test

// Notes:
// - The Marshal error branch is not tested: yaml.Marshal only fails on
//   types such as channels and functions, which configs never hold.

import (
	"errors"
	"strings"
	"testing"

	"github.com/openhive-network/denser-sub002/internal/yamlutil"
)

type testConfig struct {
	BaseURL string   `yaml:"baseUrl"`
	Width   int      `yaml:"assetsWidth"`
	Breaks  bool     `yaml:"breaks"`
	Plugins []string `yaml:"plugins"`
}

// ---------------------------------------------------------------------------
// TestDecoder - Lenient and strict decoding
// ---------------------------------------------------------------------------

func TestDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decoder yamlutil.Decoder
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name:    "valid YAML",
			decoder: yamlutil.Decoder{},
			data:    []byte("baseUrl: https://hive.blog\nassetsWidth: 560\nbreaks: true\nplugins: [instagram]"),
			dest:    &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.BaseURL != "https://hive.blog" {
					t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://hive.blog")
				}
				if cfg.Width != 560 {
					t.Errorf("Width = %d, want %d", cfg.Width, 560)
				}
				if !cfg.Breaks {
					t.Error("Breaks = false, want true")
				}
				if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "instagram" {
					t.Errorf("Plugins = %v, want [instagram]", cfg.Plugins)
				}
			},
		},
		{
			name:    "lenient ignores unknown keys",
			decoder: yamlutil.Decoder{},
			data:    []byte("baseUrl: https://hive.blog\nunknown: value"),
			dest:    &testConfig{},
		},
		{
			name:    "strict rejects unknown keys",
			decoder: yamlutil.Decoder{Strict: true},
			data:    []byte("baseUrl: https://hive.blog\nunknown: value"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "absent keys keep existing values",
			decoder: yamlutil.Decoder{Strict: true},
			data:    []byte("breaks: true"),
			dest:    &testConfig{Width: 640},
			check: func(t *testing.T, v any) {
				if cfg := v.(*testConfig); cfg.Width != 640 {
					t.Errorf("Width = %d, want %d", cfg.Width, 640)
				}
			},
		},
		{
			name:    "nil data",
			decoder: yamlutil.Decoder{},
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			decoder: yamlutil.Decoder{},
			data:    []byte("breaks: true"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML",
			decoder: yamlutil.Decoder{},
			data:    []byte("plugins: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "input over custom limit",
			decoder: yamlutil.Decoder{MaxSize: 10},
			data:    []byte("baseUrl: https://hive.blog"),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.decoder.Decode(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.HasPrefix(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want prefix %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecoder_SizeLimit - MaxSize enforcement
// ---------------------------------------------------------------------------

func TestDecoder_SizeLimit(t *testing.T) {
	t.Parallel()

	t.Run("input at limit succeeds", func(t *testing.T) {
		t.Parallel()

		data := []byte("breaks: true")
		err := yamlutil.Decoder{MaxSize: len(data)}.Decode(data, &testConfig{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		t.Parallel()

		data := []byte(strings.Repeat("#", 100))
		err := yamlutil.Decoder{MaxSize: 50}.Decode(data, &testConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("error = %v, want ErrInputTooLarge", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain both sizes, got: %s", msg)
		}
	})

	t.Run("zero limit uses default", func(t *testing.T) {
		t.Parallel()

		data := []byte(strings.Repeat("#", yamlutil.DefaultMaxSize+1))
		err := yamlutil.Decoder{}.Decode(data, &testConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Default strict decoder
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte("assetsWidth: 320"), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 320 {
		t.Errorf("Width = %d, want %d", cfg.Width, 320)
	}

	if err := yamlutil.UnmarshalStrict([]byte("footer: true"), &cfg); err == nil {
		t.Error("expected error for unknown key")
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding and round trip
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	original := testConfig{BaseURL: "https://hive.blog", Width: 99, Breaks: true, Plugins: []string{"instagram"}}

	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{"assetsWidth: 99", "breaks: true", "instagram"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q, got: %s", want, data)
		}
	}

	var decoded testConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict failed: %v", err)
	}
	if decoded.BaseURL != original.BaseURL || decoded.Width != original.Width || !decoded.Breaks {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}
