package knowledge

// stdlibModules is the set of Python standard library top-level module
// names, lowercased. It is the union of sys.stdlib_module_names across
// recent CPython releases plus the public modules present in 3.5-3.9,
// so projects targeting older interpreters filter correctly too.
var stdlibModules = toSet([]string{
	// Core / built-in
	"os", "sys", "re", "math", "random", "datetime", "json", "logging",
	"argparse", "subprocess", "typing", "pathlib", "collections", "itertools",
	"functools", "ast", "shutil", "time", "io", "copy", "platform", "enum",
	"threading", "multiprocessing", "socket", "email", "http", "urllib",
	"dataclasses", "contextlib", "abc", "inspect", "warnings", "traceback",
	// String / text
	"string", "textwrap", "unicodedata", "codecs", "difflib", "gettext",
	"locale", "readline", "rlcompleter", "stringprep",
	// Data types
	"struct", "array", "queue", "heapq", "bisect", "operator",
	"decimal", "fractions", "numbers", "statistics",
	// File / OS
	"glob", "tempfile", "fnmatch", "stat", "fileinput", "filecmp",
	"posixpath", "ntpath", "genericpath", "linecache", "shlex",
	// Compression / archive
	"zipfile", "tarfile", "gzip", "bz2", "lzma", "zlib",
	// Cryptography / hashing
	"hashlib", "hmac", "secrets",
	// Database
	"sqlite3", "dbm", "shelve",
	// CSV / config
	"csv", "configparser", "tomllib",
	// Internet protocols
	"ftplib", "imaplib", "smtplib", "poplib", "nntplib", "telnetlib",
	"xmlrpc", "html", "xml", "webbrowser", "cgi", "cgitb", "wsgiref",
	"socketserver", "ssl", "select",
	// Concurrency
	"asyncio", "concurrent", "selectors", "signal", "mmap", "sched",
	"subprocess", "contextvars",
	// Debugging / profiling
	"pdb", "cprofile", "profile", "pstats", "timeit", "trace",
	"dis", "code", "codeop", "tracemalloc", "faulthandler",
	// Token / parsing
	"token", "tokenize", "keyword", "symbol", "symtable", "parser",
	// Import system
	"importlib", "pkgutil", "zipimport", "modulefinder", "runpy",
	// Testing
	"unittest", "doctest", "test",
	// Type / runtime
	"types", "weakref", "gc", "atexit", "builtins", "numbers",
	// Binary / marshal
	"pickle", "pickletools", "copyreg", "marshal", "base64", "binascii",
	"quopri", "uu", "plistlib",
	// Misc
	"pprint", "reprlib", "graphlib", "ipaddress", "uuid", "getpass",
	"getopt", "netrc", "errno", "ctypes", "sysconfig", "site",
	"ensurepip", "venv", "zoneinfo", "calendar", "cmd", "crypt",
	// Multimedia
	"wave", "audioop", "aifc", "sunau", "colorsys", "imghdr", "sndhdr",
	"chunk", "ossaudiodev",
	// Markup / encoding
	"encodings", "mimetypes", "mailbox", "mailcap", "binhex",
	// Windows-specific
	"winreg", "winsound", "msvcrt", "msilib",
	// Unix-specific
	"fcntl", "grp", "pwd", "resource", "termios", "tty", "pty",
	"posix", "syslog", "spwd", "nis",
	// tkinter and friends
	"tkinter", "turtle", "turtledemo", "idlelib", "curses",
	// Other stdlib
	"optparse", "formatter", "distutils", "lib2to3", "antigravity", "this",
})

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
