package knowledge

import "strings"

// aliases maps import names to the installable specifier for packages
// whose distribution name differs from the import name. Values may carry
// extras when the common installation requires them.
var aliases = map[string]string{
	"sklearn":           "scikit-learn",
	"PIL":               "Pillow",
	"cv2":               "opencv-python",
	"yaml":              "PyYAML",
	"bs4":               "beautifulsoup4",
	"jose":              "python-jose[cryptography]",
	"barcode":           "python-barcode",
	"pydantic_settings": "pydantic-settings",
	"mysqldb":           "mysqlclient",
	"MySQLdb":           "mysqlclient",
	"dotenv":            "python-dotenv",
	"dateutil":          "python-dateutil",
	"psycopg2":          "psycopg2-binary",
	"tls_client":        "tls-client",
	"google.protobuf":   "protobuf",
	"telegram":          "python-telegram-bot",
	"mysql":             "pymysql",
	"qrcode":            "qrcode[pil]",

	// Classic traps: import name and distribution name are unrelated.
	"serial":        "pyserial",
	"jwt":           "PyJWT",
	"dns":           "dnspython",
	"websocket":     "websocket-client",
	"pkg_resources": "setuptools",

	// Extended mappings
	"attr":       "attrs",
	"gi":         "PyGObject",
	"Crypto":     "pycryptodome",
	"Cryptodome": "pycryptodome",
	"wx":         "wxPython",
	"magic":      "python-magic",
	"usb":        "pyusb",
	"socks":      "PySocks",
	"bson":       "pymongo",
	"kafka":      "kafka-python",
	"zmq":        "pyzmq",
	"nacl":       "PyNaCl",
	"skimage":    "scikit-image",
	"docx":       "python-docx",
	"pptx":       "python-pptx",
	"slugify":    "python-slugify",
	"decouple":   "python-decouple",
	"engineio":   "python-engineio",
	"socketio":   "python-socketio",
	"git":        "GitPython",
	"ldap":       "python-ldap",
	"multipart":  "python-multipart",
	"snappy":     "python-snappy",
	"rtree":      "Rtree",
}

// aliasesLower is a precomputed lowercase view of aliases for O(1)
// case-insensitive matching.
var aliasesLower = func() map[string]string {
	m := make(map[string]string, len(aliases))
	for k, v := range aliases {
		m[strings.ToLower(k)] = v
	}
	return m
}()
