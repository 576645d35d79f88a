package telegram

import (
	"errors"
	"testing"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCmd  string
		wantArgs string
	}{
		{"plain text", "find me founders", "", "find me founders"},
		{"plain text trimmed", "  hello  ", "", "hello"},
		{"command only", "/start", "start", ""},
		{"command with args", "/find Fintech | Delhi", "find", "Fintech | Delhi"},
		{"uppercase", "/FIND a | b", "find", "a | b"},
		{"bot mention", "/help@founder_bot", "help", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseCommand(tt.text)
			if cmd != tt.wantCmd {
				t.Errorf("command = %q, want %q", cmd, tt.wantCmd)
			}
			if args != tt.wantArgs {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestParseFindArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    domain.SearchQuery
		wantErr error
	}{
		{
			name: "domain and location",
			args: "Fintech | Delhi",
			want: domain.SearchQuery{Role: "Founder", Domain: "Fintech", Location: "Delhi"},
		},
		{
			name: "with role",
			args: "AI|Berlin|CTO",
			want: domain.SearchQuery{Role: "CTO", Domain: "AI", Location: "Berlin"},
		},
		{
			name: "extra spaces",
			args: "  Health   tech |  New   York  ",
			want: domain.SearchQuery{Role: "Founder", Domain: "Health tech", Location: "New York"},
		},
		{
			name: "blank role falls back to default",
			args: "Fintech | Delhi |  ",
			want: domain.SearchQuery{Role: "Founder", Domain: "Fintech", Location: "Delhi"},
		},
		{name: "no separator", args: "Fintech Delhi", wantErr: ErrFindUsage},
		{name: "empty", args: "", wantErr: ErrFindUsage},
		{name: "too many parts", args: "a | b | c | d", wantErr: ErrFindUsage},
		{name: "blank domain", args: " | Delhi", wantErr: domain.ErrEmptyDomain},
		{name: "blank location", args: "Fintech | ", wantErr: domain.ErrEmptyLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFindArgs(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseFindArgs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFindArgs() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFindArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
