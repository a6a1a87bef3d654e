package metadata

import "strings"

// extensionMediaTypes is a small, closed table of filename extensions
// LiQuer knows how to route to a media type without consulting the host
// operating system's mime database (which varies across environments and
// would make WithFilename's result machine-dependent).
var extensionMediaTypes = map[string]string{
	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"json": "application/json",
	"csv":  "text/csv",
	"tsv":  "text/tab-separated-values",
	"xml":  "application/xml",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"b":    "application/octet-stream",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"md":   "text/markdown",
}

func mediaTypeForFilename(name string) (string, bool) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return "", false
	}
	ext := strings.ToLower(name[dot+1:])
	mt, ok := extensionMediaTypes[ext]
	return mt, ok
}
