package targets

import "testing"

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "keeps https url", input: "https://example.nl/contact", want: "https://example.nl/contact"},
		{name: "adds https scheme", input: "example.nl", want: "https://example.nl"},
		{name: "trims whitespace", input: "  http://example.nl  ", want: "http://example.nl"},
		{name: "converts idn host", input: "café.nl/menu", want: "https://xn--caf-dma.nl/menu"},
		{name: "keeps port", input: "https://example.nl:8443/login", want: "https://example.nl:8443/login"},
		{name: "keeps ipv4 host", input: "http://127.0.0.1:8080", want: "http://127.0.0.1:8080"},
		{name: "rejects empty input", input: "   ", wantErr: true},
		{name: "rejects ftp scheme", input: "ftp://example.nl", wantErr: true},
		{name: "rejects missing host", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
