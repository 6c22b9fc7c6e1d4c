package provider

import (
	"errors"
	"testing"

	"vembed/internal/media"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   media.Platform
		wantOK bool
	}{
		{"youtube www", "https://www.youtube.com/shorts/dQw4w9WgXcQ", media.YouTube, true},
		{"youtube mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", media.YouTube, true},
		{"youtu.be", "https://youtu.be/dQw4w9WgXcQ", media.YouTube, true},
		{"youtube uppercase host", "https://WWW.YOUTUBE.COM/shorts/x", media.YouTube, true},
		{"instagram", "https://www.instagram.com/reel/Cabc123XY/", media.Instagram, true},
		{"tiktok", "https://www.tiktok.com/@someuser/video/7123456789012345678", media.TikTok, true},
		{"tiktok short", "https://vm.tiktok.com/ZMabc123/", media.TikTok, true},
		{"schemeless youtube", "youtube.com/shorts/dQw4w9WgXcQ", media.YouTube, true},
		{"unknown host", "https://example.com/video", media.Unknown, false},
		{"path in query only", "https://example.com/?next=youtube.com", media.Unknown, false},
		{"bare token", "dQw4w9WgXcQ", media.Unknown, false},
		{"no host", "/shorts/dQw4w9WgXcQ", media.Unknown, false},
		{"empty", "", media.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Detect(%q) = (%v, %v), want (%v, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestYouTubeExtract(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
	}{
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts with query", "https://youtube.com/shorts/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with time", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"watch v third", "https://www.youtube.com/watch?feature=share&list=PL1&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch v after lookalike param", "https://www.youtube.com/watch?xv=zzzzzzzzzzz&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch repeated v", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1&v=zzzzzzzzzzz", "dQw4w9WgXcQ"},
		{"watch repeated v later invalid", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&index=2&v=bad", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with si", "https://youtu.be/dQw4w9WgXcQ?si=abcdef", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with dash", "a-b_c-d_e-f", "a-b_c-d_e-f"},
	}

	y := &YouTube{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := y.Extract(tt.url)
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.url, err)
			}
			if ref.VideoID != tt.wantID {
				t.Errorf("VideoID = %q, want %q", ref.VideoID, tt.wantID)
			}
			if ref.EmbedURL != "https://www.youtube.com/embed/"+tt.wantID {
				t.Errorf("EmbedURL = %q", ref.EmbedURL)
			}
			if ref.Platform != media.YouTube {
				t.Errorf("Platform = %v, want youtube", ref.Platform)
			}
			if ref.SourceURL != tt.url {
				t.Errorf("SourceURL = %q, want %q", ref.SourceURL, tt.url)
			}
		})
	}
}

func TestYouTubeRuleOrder(t *testing.T) {
	// A shorts path wins over a v= parameter further along the URL.
	ref, err := (&YouTube{}).Extract("https://www.youtube.com/shorts/aaaaaaaaaaa?x=youtube.com/watch?v=bbbbbbbbbbb")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if ref.VideoID != "aaaaaaaaaaa" {
		t.Errorf("VideoID = %q, want the shorts ID", ref.VideoID)
	}
}

func TestYouTubeWatchFirstParamWins(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
	}{
		{"https://www.youtube.com/watch?v=aaaaaaaaaaa&v=bbbbbbbbbbb", "aaaaaaaaaaa"},
		{"https://www.youtube.com/watch?t=1&v=aaaaaaaaaaa&x=2&v=bbbbbbbbbbb", "aaaaaaaaaaa"},
		{"https://www.youtube.com/watch?t=1&v=aaaaaaaaaaa#v=bbbbbbbbbbb", "aaaaaaaaaaa"},
	}

	y := &YouTube{}
	for _, tt := range tests {
		ref, err := y.Extract(tt.url)
		if err != nil {
			t.Errorf("Extract(%q) error: %v", tt.url, err)
			continue
		}
		if ref.VideoID != tt.wantID {
			t.Errorf("Extract(%q) VideoID = %q, want %q", tt.url, ref.VideoID, tt.wantID)
		}
	}
}

func TestYouTubeExtractFailures(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no pattern", "https://youtube.com/nonsense"},
		{"watch without v", "https://www.youtube.com/watch?list=PL1&xv=dQw4w9WgXcQ"},
		{"channel page", "https://www.youtube.com/@somechannel"},
		{"id too short", "https://www.youtube.com/shorts/abc"},
		{"id too long", "https://youtu.be/dQw4w9WgXcQxyz"},
		{"bare token wrong length", "dQw4w9WgXc"},
		{"bare token bad char", "dQw4w9WgXc!"},
		{"empty", ""},
	}

	y := &YouTube{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := y.Extract(tt.url)
			if !errors.Is(err, media.ErrNoIdentifierFound) {
				t.Fatalf("Extract(%q) error = %v, want ErrNoIdentifierFound", tt.url, err)
			}
			if ref != (media.VideoReference{}) {
				t.Errorf("failed extraction returned partial reference %+v", ref)
			}
		})
	}
}

func TestInstagramExtract(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
	}{
		{"reel", "https://www.instagram.com/reel/Cabc123XY/", "Cabc123XY"},
		{"reels", "https://www.instagram.com/reels/Cabc_12-3/", "Cabc_12-3"},
		{"post permalink", "https://www.instagram.com/p/Cabc123XY/", "Cabc123XY"},
		{"reel with query", "https://instagram.com/reel/Cabc123XY?igsh=xyz", "Cabc123XY"},
	}

	ig := &Instagram{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ig.Extract(tt.url)
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.url, err)
			}
			if ref.VideoID != tt.wantID {
				t.Errorf("VideoID = %q, want %q", ref.VideoID, tt.wantID)
			}
			want := "https://www.instagram.com/reel/" + tt.wantID + "/embed/"
			if ref.EmbedURL != want {
				t.Errorf("EmbedURL = %q, want %q", ref.EmbedURL, want)
			}
		})
	}
}

func TestInstagramExtractFailures(t *testing.T) {
	for _, u := range []string{
		"https://www.instagram.com/someuser/",
		"https://www.instagram.com/stories/someuser/123/",
		"https://www.instagram.com/reel/",
	} {
		if _, err := (&Instagram{}).Extract(u); !errors.Is(err, media.ErrNoIdentifierFound) {
			t.Errorf("Extract(%q) error = %v, want ErrNoIdentifierFound", u, err)
		}
	}
}

func TestTikTokExtract(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
	}{
		{"video", "https://www.tiktok.com/@someuser/video/7123456789012345678", "7123456789012345678"},
		{"video with dots in user", "https://www.tiktok.com/@some.user_1/video/7123456789012345678?lang=en", "7123456789012345678"},
		{"vm short link", "https://vm.tiktok.com/ZMabc123/", "ZMabc123"},
		{"t short link", "https://www.tiktok.com/t/ZTRabc9/", "ZTRabc9"},
	}

	tk := &TikTok{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := tk.Extract(tt.url)
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.url, err)
			}
			if ref.VideoID != tt.wantID {
				t.Errorf("VideoID = %q, want %q", ref.VideoID, tt.wantID)
			}
			if ref.EmbedURL != "https://www.tiktok.com/embed/v2/"+tt.wantID {
				t.Errorf("EmbedURL = %q", ref.EmbedURL)
			}
		})
	}
}

func TestTikTokExtractFailures(t *testing.T) {
	for _, u := range []string{
		"https://www.tiktok.com/@someuser",
		"https://www.tiktok.com/@someuser/video/abc",
		"https://www.tiktok.com/explore",
	} {
		if _, err := (&TikTok{}).Extract(u); !errors.Is(err, media.ErrNoIdentifierFound) {
			t.Errorf("Extract(%q) error = %v, want ErrNoIdentifierFound", u, err)
		}
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		platform media.Platform
		want     bool
	}{
		{"youtube valid", "dQw4w9WgXcQ", media.YouTube, true},
		{"youtube short", "dQw4w9WgXc", media.YouTube, false},
		{"youtube long", "dQw4w9WgXcQQ", media.YouTube, false},
		{"youtube bad char", "dQw4w9WgX.Q", media.YouTube, false},
		{"instagram valid", "Cabc_12-3", media.Instagram, true},
		{"instagram empty", "", media.Instagram, false},
		{"instagram slash", "Cabc/123", media.Instagram, false},
		{"tiktok numeric", "7123456789012345678", media.TikTok, true},
		{"tiktok short code", "ZMabc123", media.TikTok, true},
		{"tiktok underscore", "ZM_abc", media.TikTok, false},
		{"tiktok empty", "", media.TikTok, false},
		{"unknown platform", "dQw4w9WgXcQ", media.Unknown, false},
		{"newline injection", "dQw4w9WgXc\n", media.YouTube, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidID(tt.id, tt.platform); got != tt.want {
				t.Errorf("IsValidID(%q, %v) = %v, want %v", tt.id, tt.platform, got, tt.want)
			}
		})
	}
}

func TestFor(t *testing.T) {
	for _, p := range media.Platforms {
		prov, err := For(p)
		if err != nil {
			t.Fatalf("For(%v) error: %v", p, err)
		}
		if prov.Platform() != p {
			t.Errorf("For(%v).Platform() = %v", p, prov.Platform())
		}
		if len(prov.Shapes()) == 0 {
			t.Errorf("For(%v).Shapes() is empty", p)
		}
	}

	if _, err := For(media.Unknown); !errors.Is(err, media.ErrUnsupportedPlatform) {
		t.Errorf("For(Unknown) error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestAllOrder(t *testing.T) {
	all := All()
	if len(all) != len(media.Platforms) {
		t.Fatalf("All() returned %d providers, want %d", len(all), len(media.Platforms))
	}
	for i, p := range media.Platforms {
		if all[i].Platform() != p {
			t.Errorf("All()[%d] = %v, want %v", i, all[i].Platform(), p)
		}
	}
}
