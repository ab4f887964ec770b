package common

import (
	"reflect"
	"testing"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"  Example.COM  ", "example.com"},
		{"https://www.example.com", "example.com"},
		{"http://example.com/vote", "example.com"},
		{"www.example.com", "example.com"},
		{"www.www.example.com", "www.example.com"}, // only one prefix stripped
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDomain(tt.in); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTokens(t *testing.T) {
	got := NormalizeTokens([]string{" Foo", "foo", "BAR", "", "  "}, false)
	want := []string{"bar", "foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTokens() = %v, want %v", got, want)
	}
}

func TestNormalizeTokens_StripWWW(t *testing.T) {
	got := NormalizeTokens([]string{"WWW.Example.com ", "example.com", "other.net"}, true)
	want := []string{"example.com", "other.net"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTokens(stripWWW) = %v, want %v", got, want)
	}
}

func TestNormalizeTokens_Empty(t *testing.T) {
	got := NormalizeTokens(nil, false)
	if got == nil || len(got) != 0 {
		t.Errorf("NormalizeTokens(nil) = %v, want empty non-nil slice", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" a, b ,, c ")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCSV() = %v, want %v", got, want)
	}
	if SplitCSV("") != nil {
		t.Errorf("SplitCSV(\"\") = %v, want nil", SplitCSV(""))
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("say hello\r\n\r\n  say world  \n")
	want := []string{"say hello", "say world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %v, want %v", got, want)
	}
}
