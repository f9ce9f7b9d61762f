package knowledge

// suspiciousNames holds generic names that are almost always local modules
// in user projects, even when a distribution of the same name exists on
// PyPI. They are filtered out before any resolution attempt and never
// verified remotely.
var suspiciousNames = toSet([]string{
	// Generic project structure names
	"core", "modules", "crm", "ledgers", "config", "utils", "common",
	"tests", "test", "settings", "db", "database",
	"app", "main", "base", "api", "infra", "lib", "libs", "helpers",
	"models", "schemas", "services", "controllers", "routers",
	"middleware", "plugins", "extensions", "tasks", "jobs",
	"views", "forms", "serializers", "signals", "admin", "management",
	"fixtures", "migrations", "templatetags", "context_processors",

	// Cloud namespace roots: real packages live under submodules like
	// google.cloud.storage, so the bare root is never installable intent.
	"google", "azure", "amazon", "aws",

	// Common script names that also exist on PyPI
	"setup", "manage", "server", "worker", "run", "start",
})
