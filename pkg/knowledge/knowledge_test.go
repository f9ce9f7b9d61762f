package knowledge

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Django", "django"},
		{"pydantic_settings", "pydantic-settings"},
		{"google.cloud.storage", "google-cloud-storage"},
		{"already-hyphenated", "already-hyphenated"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"os", "os"},
		{"os.path", "os"},
		{"google.cloud.storage", "google"},
	}
	for _, tt := range tests {
		if got := BaseSegment(tt.in); got != tt.want {
			t.Errorf("BaseSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsStdlib(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"os", true},
		{"OS", true},
		{"os.path", true},
		{"collections.abc", true},
		{"_internal", true},
		{"__future__", true},
		{"asyncio", true},
		{"requests", false},
		{"numpy", false},
	}
	for _, tt := range tests {
		if got := IsStdlib(tt.name); got != tt.want {
			t.Errorf("IsStdlib(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLookupAlias(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"sklearn", "scikit-learn", true},
		{"PIL", "Pillow", true},
		{"pil", "Pillow", true}, // case-insensitive fallback
		{"cv2", "opencv-python", true},
		{"yaml", "PyYAML", true},
		{"jose", "python-jose[cryptography]", true},
		{"psycopg2", "psycopg2-binary", true},
		{"jwt", "PyJWT", true},
		{"google.protobuf", "protobuf", true},
		{"requests", "", false},
	}
	for _, tt := range tests {
		got, ok := LookupAlias(tt.name)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("LookupAlias(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsKnownPackage(t *testing.T) {
	for _, name := range []string{"requests", "fastapi", "pytest", "google-cloud-storage"} {
		if !IsKnownPackage(name) {
			t.Errorf("IsKnownPackage(%q) = false, want true", name)
		}
	}
	if IsKnownPackage("definitely-not-a-package-zz") {
		t.Error("IsKnownPackage(unknown) = true")
	}
}

func TestIsSuspicious(t *testing.T) {
	for _, name := range []string{"core", "utils", "config", "app", "google", "aws"} {
		if !IsSuspicious(name) {
			t.Errorf("IsSuspicious(%q) = false, want true", name)
		}
	}
	if IsSuspicious("requests") {
		t.Error("IsSuspicious(requests) = true")
	}
}

func TestCompanionsFor(t *testing.T) {
	fastapi := CompanionsFor("fastapi")
	if len(fastapi) != 3 {
		t.Errorf("CompanionsFor(fastapi) = %v, want 3 companions", fastapi)
	}
	if got := CompanionsFor("Flask"); len(got) != 1 || got[0] != "gunicorn" {
		t.Errorf("CompanionsFor(Flask) = %v, want [gunicorn]", got)
	}
	if got := CompanionsFor("requests"); got != nil {
		t.Errorf("CompanionsFor(requests) = %v, want nil", got)
	}
}
