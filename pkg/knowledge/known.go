package knowledge

// knownPackages is a curated set of popular PyPI distribution names,
// normalized (lowercase, hyphenated). A hit here means "this import name
// is the package of the same name" and skips network verification.
var knownPackages = toSet([]string{
	// Data science / ML
	"numpy", "pandas", "scipy", "matplotlib", "seaborn", "scikit-learn",
	"tensorflow", "torch", "keras", "plotly", "bokeh", "altair", "streamlit",
	"jupyter", "notebook", "ipython", "statsmodels", "sympy", "networkx",

	// Web frameworks
	"django", "flask", "fastapi", "starlette", "sanic", "tornado", "aiohttp",
	"pyramid", "bottle", "cherrypy", "falcon", "quart", "litestar",

	// Validation & serialization
	"pydantic", "marshmallow", "cerberus", "jsonschema", "msgspec", "orjson", "ujson",

	// Database / ORM
	"sqlalchemy", "tortoise-orm", "peewee", "pony", "sqlmodel", "piccolo",
	"alembic", "psycopg2", "psycopg2-binary", "asyncpg", "pymysql", "mysqlclient",
	"aiomysql", "redis", "aioredis", "pymongo", "motor", "cassandra-driver",
	"elasticsearch", "influxdb", "clickhouse-driver", "pyodbc",

	// Networking / HTTP
	"requests", "httpx", "urllib3", "grequests", "uplink", "httpcore",

	// Utils / CLI
	"click", "typer", "rich", "tqdm", "colorama", "fire", "docopt",
	"python-dotenv", "dynaconf", "loguru", "structlog", "colorlog",

	// Testing
	"pytest", "nose2", "tox", "nox", "coverage", "hypothesis", "faker",
	"factory-boy", "pytest-cov", "pytest-asyncio", "pytest-mock", "pytest-xdist",

	// Linting / formatting
	"black", "ruff", "isort", "mypy", "flake8", "pylint", "autopep8", "yapf",

	// Async
	"trio", "curio", "anyio", "greenlet", "gevent", "uvloop",

	// Security / auth
	"passlib", "bcrypt", "argon2-cffi", "pyjwt", "python-jose", "authlib",
	"oauthlib", "cryptography", "pyopenssl",

	// Cloud
	"boto3", "botocore", "s3fs", "gcsfs", "azure-storage-blob", "google-cloud-storage",

	// Image / vision
	"pillow", "opencv-python", "scikit-image", "moviepy", "imageio",

	// Report / PDF / Excel
	"reportlab", "pdfminer", "pypdf2", "pdfplumber", "weasyprint",
	"openpyxl", "xlrd", "xlsxwriter",

	// DevOps / infrastructure
	"docker", "kubernetes", "ansible", "fabric", "invoke", "pulumi",

	// Queues
	"celery", "dramatiq", "rq", "huey",

	// Misc
	"pyyaml", "toml", "tomli", "xmltodict", "beautifulsoup4", "lxml", "parsel",
	"phonenumbers", "pycountry", "pytz", "pendulum", "arrow", "dateparser",
	"humanize", "bleach", "markdown", "lz4", "geopy",

	// Stdlib-adjacent backports
	"typing-extensions", "mock", "pathlib2", "importlib-metadata",

	// Servers and companions
	"email-validator", "python-multipart", "gunicorn", "uvicorn",
	"hypercorn", "daphne", "python-barcode",
})
