package sync

import "testing"

func TestNormalizeVideoRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"not a url at all", "not a url at all"},
		{"", ""},
		{"https://example.com/videos/abc123", "abc123"},
		{"https://example.com/player?v=xyz", "xyz"},
		{"https://example.com/", "https://example.com/"},
	}
	for _, tc := range cases {
		if got := NormalizeVideoRef(tc.in); got != tc.want {
			t.Errorf("NormalizeVideoRef(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
