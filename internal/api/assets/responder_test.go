package assets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(responder *Responder) *gin.Engine {
	router := gin.New()
	router.NoRoute(responder.Serve)
	return router
}

func request(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index.htm", "text/html"},
		{"style.css", "text/css"},
		{"index.js", "text/javascript"},
		{"data.json", "application/json"},
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"favicon.ico", "image/x-icon"},
		{"song.mp3", "audio/mpeg"},
		{"page.html", "application/octet-stream"},
		{"photo.jpeg", "application/octet-stream"},
		{"README", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.name))
		})
	}
}

func TestServeFile(t *testing.T) {
	files := fstest.MapFS{
		"app.js":         {Data: []byte("console.log(1)")},
		"nested/img.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	router := newRouter(NewResponder(files, logging.NewNop()))

	w := request(router, http.MethodGet, "/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())
	assert.Equal(t, "text/javascript", w.Header().Get("Content-Type"))
	assert.Equal(t, "14", w.Header().Get("Content-Length"))
	assert.Equal(t, CacheControl, w.Header().Get("Cache-Control"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Headers"))

	w = request(router, http.MethodGet, "/nested/img.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestServeHead(t *testing.T) {
	files := fstest.MapFS{"app.css": {Data: []byte("body{}")}}
	router := newRouter(NewResponder(files, logging.NewNop()))

	w := request(router, http.MethodHead, "/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "text/css", w.Header().Get("Content-Type"))
	assert.Equal(t, "6", w.Header().Get("Content-Length"))
}

func TestServeMisses(t *testing.T) {
	files := fstest.MapFS{"dir/file.js": {Data: []byte("x")}}
	router := newRouter(NewResponder(files, logging.NewNop()))

	for _, target := range []string{"/", "/missing.js", "/dir", "/dir/", "/../dir/other.js"} {
		t.Run(target, func(t *testing.T) {
			w := request(router, http.MethodGet, target)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestScript(t *testing.T) {
	router := gin.New()
	responder := NewResponder(fstest.MapFS{}, logging.NewNop())
	router.GET("/host.js", responder.Script("window.answer = 42;"))

	w := request(router, http.MethodGet, "/host.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "window.answer = 42;", w.Body.String())
	assert.Equal(t, "text/javascript", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestEmbeddedIndex(t *testing.T) {
	router := newRouter(NewResponder(web.Static(), logging.NewNop()))

	w := request(router, http.MethodGet, "/index.htm")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html", w.Header().Get("Content-Type"))

	page, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)

	assert.Equal(t, "Go Webview Demo", strings.TrimSpace(page.Find("title").Text()))
	for _, id := range []string{"#nameInput", "#greet-user", "#increment-counter", "#decrement-counter", "#counter", "#get-current-time", "#response"} {
		assert.Equal(t, 1, page.Find(id).Length(), id)
	}

	// every referenced local asset must be served
	var refs []string
	page.Find("script[src], link[href]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			refs = append(refs, src)
		}
		if href, ok := s.Attr("href"); ok {
			refs = append(refs, href)
		}
	})
	assert.Contains(t, refs, "/host.js")
	for _, ref := range refs {
		if ref == "/host.js" {
			continue
		}
		w := request(router, http.MethodGet, "/"+strings.TrimPrefix(ref, "/"))
		assert.Equal(t, http.StatusOK, w.Code, ref)
	}
}
