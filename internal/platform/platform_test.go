package platform

import "testing"

func TestPathSegment(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"YouTube", "youtube"},
		{"Twitter (X)", "twitterx"},
		{"TikTok", "tiktok"},
		{"SoundCloud", "soundcloud"},
		{"TED", "ted"},
		{"Some Platform", "someplatform"},
		{"under_score", "under_score"},
	}
	for _, tt := range tests {
		if got := PathSegment(tt.name); got != tt.want {
			t.Errorf("PathSegment(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRegistryShape(t *testing.T) {
	if len(Registry) != 17 {
		t.Fatalf("Registry has %d platforms, want 17", len(Registry))
	}

	for name, entry := range Registry {
		if len(entry.URLs) == 0 {
			t.Errorf("platform %q has no URLs", name)
		}
		if PathSegment(name) == "" {
			t.Errorf("platform %q produces an empty path segment", name)
		}
	}
}

func TestPathSegmentsAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, name := range Names() {
		segment := PathSegment(name)
		if other, dup := seen[segment]; dup {
			t.Errorf("platforms %q and %q share route segment %q", name, other, segment)
		}
		seen[segment] = name
	}
}

func TestNamesCoversRegistry(t *testing.T) {
	names := Names()
	if len(names) != len(Registry) {
		t.Fatalf("Names() len = %d, want %d", len(names), len(Registry))
	}
	for _, name := range names {
		if _, ok := Registry[name]; !ok {
			t.Errorf("Names() includes %q which is not in the registry", name)
		}
	}
}
