package handlers

import "testing"

func TestExtractLink(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"https://youtu.be/abc123", "https://youtu.be/abc123", true},
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/watch?v=abc123", true},
		{"HTTPS://YOUTUBE.COM/watch?v=abc123", "HTTPS://YOUTUBE.COM/watch?v=abc123", true},
		{"youtu.be/abc123", "https://youtu.be/abc123", true},
		{"www.youtube.com/watch?v=abc123", "https://www.youtube.com/watch?v=abc123", true},
		{"check this out: http://youtube.com/watch?v=abc123 🔥", "http://youtube.com/watch?v=abc123", true},
		{"https://vimeo.com/12345", "", false},
		{"just some text", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := extractLink(c.text)
		if ok != c.ok || got != c.want {
			t.Errorf("extractLink(%q) = (%q, %v), want (%q, %v)", c.text, got, ok, c.want, c.ok)
		}
	}
}

func TestSplitCallbackData(t *testing.T) {
	cases := []struct {
		data   string
		action string
		value  string
	}{
		{"type_audio", "type", "audio"},
		{"type_video", "type", "video"},
		{"q_720", "q", "720"},
		{"q_128", "q", "128"},
		{"check_join", "check", "join"},
		{"garbage", "garbage", ""},
	}
	for _, c := range cases {
		action, value := splitCallbackData(c.data)
		if action != c.action || value != c.value {
			t.Errorf("splitCallbackData(%q) = (%q, %q), want (%q, %q)", c.data, action, value, c.action, c.value)
		}
	}
}
