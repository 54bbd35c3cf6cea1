package badge

import "testing"

func TestDescriptorJSON_WithCacheSeconds(t *testing.T) {
	d := New(DefaultLabel, MapDeploymentStatus("success"), 60)
	got := string(d.JSON())
	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"passing","color":"green","cacheSeconds":60}`
	if got != want {
		t.Fatalf("JSON mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestDescriptorJSON_ZeroCacheSecondsKept(t *testing.T) {
	d := New("x", Mapping{Message: "m", Color: ColorBlue}, 0)
	if d.CacheSeconds == nil || *d.CacheSeconds != 0 {
		t.Fatalf("expected cacheSeconds=0 to be kept, got %v", d.CacheSeconds)
	}
}

func TestError_OmitsCacheSeconds(t *testing.T) {
	d := Error("api error", ColorCritical)
	got := string(d.JSON())
	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"api error","color":"critical"}`
	if got != want {
		t.Fatalf("JSON mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEnvironmentLabel(t *testing.T) {
	if got := EnvironmentLabel("preview"); got != "Pages (preview)" {
		t.Fatalf("unexpected label %q", got)
	}
}
