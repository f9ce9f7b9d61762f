package heuristics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func imports(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func TestDjangoPostgresEngine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mysite", "settings.py"), `
DATABASES = {
    "default": {
        "ENGINE": "django.db.backends.postgresql",
        "NAME": "mydb",
    }
}
`)

	got := Run(root, imports("django"), Options{})
	if len(got) != 1 || got[0] != "psycopg2-binary" {
		t.Errorf("Run() = %v, want [psycopg2-binary]", got)
	}
}

func TestDjangoEngineVariants(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		want    string
	}{
		{"legacy postgres", `'ENGINE': 'django.db.backends.postgresql_psycopg2'`, "psycopg2-binary"},
		{"mysql", `"ENGINE": "django.db.backends.mysql"`, "mysqlclient"},
		{"oracle", `"ENGINE": "django.db.backends.oracle"`, "cx_Oracle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "settings.py"), "DATABASES = {'default': {"+tt.setting+"}}")

			got := Run(root, imports("django"), Options{})
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Run() = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestDjangoRedisCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "settings", "production.py"), `
CACHES = {
    "default": {
        "BACKEND": "django.core.cache.backends.redis.RedisCache",
        "LOCATION": "redis://127.0.0.1:6379",
    }
}
`)

	got := Run(root, imports("django"), Options{})
	want := map[string]bool{"django-redis": false, "redis": false}
	for _, dep := range got {
		want[dep] = true
	}
	for dep, seen := range want {
		if !seen {
			t.Errorf("Run() = %v, missing %q", got, dep)
		}
	}
}

func TestDjangoSettingsInVenvIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".venv", "lib", "site", "settings.py"),
		`"ENGINE": "django.db.backends.mysql"`)

	if got := Run(root, imports("django"), Options{}); len(got) != 0 {
		t.Errorf("Run() = %v, want empty for venv-only settings", got)
	}
}

func TestDjangoNoSettingsNoError(t *testing.T) {
	if got := Run(t.TempDir(), imports("django"), Options{}); len(got) != 0 {
		t.Errorf("Run() = %v, want empty", got)
	}
}

func TestFastAPIServerSuggestion(t *testing.T) {
	root := t.TempDir()

	got := Run(root, imports("fastapi"), Options{})
	if len(got) != 1 || got[0] != "uvicorn[standard]" {
		t.Errorf("Run(fastapi) = %v, want [uvicorn[standard]]", got)
	}

	if got := Run(root, imports("fastapi", "uvicorn"), Options{}); len(got) != 0 {
		t.Errorf("Run(fastapi+uvicorn) = %v, want empty", got)
	}
	if got := Run(root, imports("fastapi", "hypercorn"), Options{}); len(got) != 0 {
		t.Errorf("Run(fastapi+hypercorn) = %v, want empty", got)
	}
}

func TestFlaskServerSuggestion(t *testing.T) {
	root := t.TempDir()

	got := Run(root, imports("flask"), Options{})
	if len(got) != 1 || got[0] != "gunicorn" {
		t.Errorf("Run(flask) = %v, want [gunicorn]", got)
	}

	if got := Run(root, imports("flask", "gunicorn"), Options{}); len(got) != 0 {
		t.Errorf("Run(flask+gunicorn) = %v, want empty", got)
	}
}

func TestNoFrameworkNoSuggestions(t *testing.T) {
	if got := Run(t.TempDir(), imports("requests", "numpy"), Options{}); len(got) != 0 {
		t.Errorf("Run() = %v, want empty", got)
	}
}
