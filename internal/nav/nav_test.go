package nav

import (
	"net/url"
	"testing"
)

func TestEncodeComponent(t *testing.T) {
	tc := []struct {
		in   string
		want string
	}{
		{"https://example.com/recipe", "https%3A%2F%2Fexample.com%2Frecipe"},
		{"a b+c", "a%20b%2Bc"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"crème brûlée", "cr%C3%A8me%20br%C3%BBl%C3%A9e"},
		{"100%", "100%25"},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := EncodeComponent(tt.in); got != tt.want {
				t.Errorf("EncodeComponent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShowRoundTrip(t *testing.T) {
	urls := []string{
		"https://example.com/recipe",
		"https://example.com/a?b=c&d=e#frag",
		"https://example.com/%E2%9C%93/already%2Fencoded",
		"https://example.com/path with spaces/+plus",
		"https://例え.jp/レシピ?q=1",
		"http://localhost:8080/x;y=z",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			route, err := Parse(ShowPath(u, ""))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if route.Kind != Show {
				t.Fatalf("expected show route, got %v", route.Kind)
			}
			if route.URL != u {
				t.Errorf("round trip changed url: got %q want %q", route.URL, u)
			}
		})
	}

	t.Run("title hint", func(t *testing.T) {
		route, err := Parse(ShowPath("https://a.com/?x=1&y=2", "Mac & Cheese + more"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route.URL != "https://a.com/?x=1&y=2" || route.TitleHint != "Mac & Cheese + more" {
			t.Errorf("unexpected route %+v", route)
		}
	})
}

func TestResolve(t *testing.T) {
	tc := []struct {
		name string
		text string
		want string
	}{
		{"empty goes home", "", "/"},
		{"url goes to show", "https://example.com/recipe", "/show/https%3A%2F%2Fexample.com%2Frecipe"},
		{"word goes to search", "pancakes", "/search?q=pancakes"},
		{"phrase is encoded", "banana bread", "/search?q=banana%20bread"},
		{"any scheme is a url", "mailto:a@b.com", "/show/mailto%3Aa%40b.com"},
		{"scheme without slashes is a url", "https:example.com", "/show/https%3Aexample.com"},
		{"bare domain is a search", "example.com", "/search?q=example.com"},
		{"leading digit is not a scheme", "1:2 eggs", "/search?q=1%3A2%20eggs"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.text); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}

	t.Run("search term round trips", func(t *testing.T) {
		route, err := Parse(Resolve("1+1 = two & more"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route.Kind != Search || route.Term != "1+1 = two & more" {
			t.Errorf("unexpected route %+v", route)
		}
	})
}

func TestResolveShare(t *testing.T) {
	t.Run("text and title", func(t *testing.T) {
		values, _ := url.ParseQuery("text=https://example.com/recipe&title=Pancakes")
		got := ResolveShare(values)
		want := "/show/https%3A%2F%2Fexample.com%2Frecipe?titleHint=Pancakes"
		if got != want {
			t.Errorf("ResolveShare() = %q, want %q", got, want)
		}

		route, err := Parse(got)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route.URL != "https://example.com/recipe" || route.TitleHint != "Pancakes" {
			t.Errorf("unexpected route %+v", route)
		}
	})

	tc := []struct {
		name   string
		values url.Values
		want   string
	}{
		{
			"plain text with title",
			url.Values{"text": {"Pancakes recipe"}, "title": {"P"}},
			"/show/Pancakes%20recipe?titleHint=P",
		},
		{
			"whole text is encoded",
			url.Values{"text": {"Try this https://a.com/r"}},
			"/show/Try%20this%20https%3A%2F%2Fa.com%2Fr",
		},
		{"text is not trimmed", url.Values{"text": {" https://a.com/r"}}, "/show/%20https%3A%2F%2Fa.com%2Fr"},
		{"url field alone goes home", url.Values{"url": {"https://a.com/r"}}, "/"},
		{"title alone goes home", url.Values{"title": {"Pancakes"}}, "/"},
		{"empty", url.Values{}, "/"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveShare(tt.values); got != tt.want {
				t.Errorf("ResolveShare() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tc := []struct {
		location string
		kind     Kind
	}{
		{"", Home},
		{"/", Home},
		{"/recent", Recent},
		{"/favorites", Favorites},
		{"/add", Add},
		{"/search?q=x", Search},
		{"/share-target?text=x", ShareTarget},
		{"/show/x", Show},
		{"/nope", NotFound},
	}

	for _, tt := range tc {
		t.Run(tt.location, func(t *testing.T) {
			route, err := Parse(tt.location)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if route.Kind != tt.kind {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.location, route.Kind, tt.kind)
			}
		})
	}

	t.Run("malformed escape", func(t *testing.T) {
		if _, err := Parse("/show/%zz"); err == nil {
			t.Error("expected error for malformed escape")
		}
	})

	t.Run("share values", func(t *testing.T) {
		route, _ := Parse(SharePath(url.Values{"text": {"https://a.com"}, "title": {"A"}}))
		if route.Share.Get("title") != "A" || route.Share.Get("text") != "https://a.com" {
			t.Errorf("unexpected share values %v", route.Share)
		}
	})
}

func TestHostname(t *testing.T) {
	if got := Hostname("https://www.example.com:8443/a"); got != "www.example.com" {
		t.Errorf("unexpected hostname %q", got)
	}
	if got := Hostname("not a url"); got != "not a url" {
		t.Errorf("expected input back, got %q", got)
	}
}
