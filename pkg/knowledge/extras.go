package knowledge

// frameworkExtras maps a resolved base package name (lowercase) to the
// companion specifiers implied by its presence. Keys are matched against
// the base name of each resolved dependency.
var frameworkExtras = map[string][]string{
	"fastapi":    {"uvicorn[standard]", "python-multipart", "email-validator"},
	"flask":      {"gunicorn"},
	"django":     {"gunicorn", "psycopg2-binary"},
	"celery":     {"redis"},
	"passlib":    {"passlib[bcrypt]", "bcrypt==4.1.2"},
	"sqlalchemy": {"greenlet"},
	"pandas":     {"openpyxl"},
	"uvicorn":    {"uvicorn[standard]"},
}
