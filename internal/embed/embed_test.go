package embed

import "testing"

func TestResolve(t *testing.T) {
	const want = "https://www.youtube-nocookie.com/embed/bMknfKXIFA8?rel=0"

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "watch url", input: "https://www.youtube.com/watch?v=bMknfKXIFA8", want: want},
		{name: "watch url with extra params", input: "https://www.youtube.com/watch?v=bMknfKXIFA8&t=42s&list=PL1", want: want},
		{name: "v param not first", input: "https://www.youtube.com/watch?feature=share&v=bMknfKXIFA8", want: want},
		{name: "short link", input: "https://youtu.be/bMknfKXIFA8", want: want},
		{name: "short link with timestamp", input: "https://youtu.be/bMknfKXIFA8?t=5", want: want},
		{name: "shorts path", input: "https://www.youtube.com/shorts/bMknfKXIFA8", want: want},
		{name: "shorts path with query", input: "https://www.youtube.com/shorts/bMknfKXIFA8?feature=share", want: want},
		{name: "legacy v path", input: "https://m.youtube.com/v/bMknfKXIFA8", want: want},
		{name: "surrounding whitespace", input: "  https://youtu.be/bMknfKXIFA8  ", want: want},
		{
			name:  "embed url passthrough",
			input: "https://www.youtube.com/embed/bMknfKXIFA8?start=10",
			want:  "https://www.youtube.com/embed/bMknfKXIFA8?start=10",
		},
		{
			name:  "privacy embed passthrough",
			input: "https://www.youtube-nocookie.com/embed/bMknfKXIFA8?rel=0",
			want:  want,
		},
		{name: "embed path behind a script scheme is rebuilt", input: "javascript:alert(1)//youtube.com/embed/bMknfKXIFA8", want: want},
		{name: "scheme-less embed path is rebuilt", input: "www.youtube.com/embed/bMknfKXIFA8", want: want},
		{name: "script scheme without an id", input: "javascript:alert(1)//youtube.com/embed/", want: ""},
		{name: "id too short", input: "https://www.youtube.com/watch?v=short", want: ""},
		{name: "id with forbidden characters", input: "https://youtu.be/bMknf<IFA8", want: ""},
		{name: "unrelated url", input: "https://example.com/course/42", want: ""},
		{name: "not a url", input: "definitely not a link", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.input); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	id, ok := VideoID("https://youtu.be/rfscVS0vtbw?t=5")
	if !ok || id != "rfscVS0vtbw" {
		t.Errorf("VideoID() = %q, %v", id, ok)
	}

	if _, ok := VideoID("https://example.com"); ok {
		t.Error("VideoID() should not match unrelated urls")
	}
}

func TestURL(t *testing.T) {
	if got := URL("rfscVS0vtbw"); got != "https://www.youtube-nocookie.com/embed/rfscVS0vtbw?rel=0" {
		t.Errorf("URL() = %q", got)
	}
}
