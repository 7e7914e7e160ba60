package csvimport

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		delim rune
		want  [][]string
	}{
		{
			name:  "simple rows",
			raw:   "a,b,c\n1,2,3",
			delim: ',',
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "quoted delimiter is literal",
			raw:   `2024-01-15,"Coffee, oat milk",4.85`,
			delim: ',',
			want:  [][]string{{"2024-01-15", "Coffee, oat milk", "4.85"}},
		},
		{
			name:  "blank lines skipped",
			raw:   "a,b\n\n   \n1,2\n",
			delim: ',',
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "crlf line endings",
			raw:   "a,b\r\n1,2\r\n",
			delim: ',',
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "semicolon delimiter",
			raw:   "a;b;c\n1;2;3",
			delim: ';',
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "fields trimmed",
			raw:   " a , b ",
			delim: ',',
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "unterminated quote runs to end of line",
			raw:   `a,"b,c`,
			delim: ',',
			want:  [][]string{{"a", `"b,c`}},
		},
		{
			name:  "empty trailing field",
			raw:   "a,b,",
			delim: ',',
			want:  [][]string{{"a", "b", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw, tt.delim)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want rune
	}{
		{"comma", "date,description,amount\n...", ','},
		{"semicolon", "date;description;amount\n...", ';'},
		{"tab", "date\tdescription\tamount", '\t'},
		{"pipe", "date|description|amount", '|'},
		{"comma wins ties", "date,description;amount;x,y", ','},
		{"no delimiter defaults to comma", "justoneheader", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.raw); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
