// Package assets serves the embedded document files over HTTP.
package assets

import (
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
)

// CacheControl is sent with every served asset.
const CacheControl = "private, max-age=3600"

var contentTypes = map[string]string{
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "text/javascript",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"ico":  "image/x-icon",
	"mp3":  "audio/mpeg",
}

// ContentType maps a file name to its MIME type by extension.
func ContentType(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Responder serves files from an embedded tree
type Responder struct {
	files  fs.FS
	logger *logging.Logger
}

// NewResponder creates a responder over files
func NewResponder(files fs.FS, logger *logging.Logger) *Responder {
	return &Responder{
		files:  files,
		logger: logger.Named("assets"),
	}
}

// Serve answers any method with the file at the request path; HEAD gets the
// headers only. Anything that is not a regular file is a 404 with an empty body.
func (r *Responder) Serve(c *gin.Context) {
	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	r.logger.Trace("Serve", zap.String("path", c.Request.URL.Path))

	data, ok := r.read(name)
	if !ok {
		r.logger.Debug("asset not found", zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	r.logger.Debug("load file", zap.String("path", name), zap.Int("bytes", len(data)))

	header := c.Writer.Header()
	header.Set("Content-Length", strconv.Itoa(len(data)))
	header.Set("Cache-Control", CacheControl)
	setCORS(header)

	if c.Request.Method == http.MethodHead {
		header.Set("Content-Type", ContentType(name))
		c.Status(http.StatusOK)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(http.StatusOK, ContentType(name), data)
}

// Script serves a generated script body with the asset headers
func (r *Responder) Script(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Content-Length", strconv.Itoa(len(body)))
		header.Set("Cache-Control", "no-store")
		setCORS(header)
		if c.Request.Method == http.MethodHead {
			header.Set("Content-Type", contentTypes["js"])
			c.Status(http.StatusOK)
			c.Writer.WriteHeaderNow()
			return
		}
		c.Data(http.StatusOK, contentTypes["js"], []byte(body))
	}
}

func (r *Responder) read(name string) ([]byte, bool) {
	if name == "" || name == "." {
		return nil, false
	}
	info, err := fs.Stat(r.files, name)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	data, err := fs.ReadFile(r.files, name)
	if err != nil {
		r.logger.Error("fail to read asset", zap.String("path", name), zap.Error(err))
		return nil, false
	}
	return data, true
}

func setCORS(header http.Header) {
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "*")
	header.Set("Access-Control-Allow-Headers", "*")
}
