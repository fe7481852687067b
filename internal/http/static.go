package http

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/houseping/internal/apipaths"
	"github.com/houseping/internal/constants"
)

// serveIndex serves the index document for / and /about
func (s *Server) serveIndex(c *gin.Context) {
	s.serveAsset(c, constants.IndexDocument)
}

// serveStatic handles every path no route matched. Unknown /api paths get a JSON 404;
// anything else is an exact lookup in the embedded bundle.
func (s *Server) serveStatic(c *gin.Context) {
	if apipaths.IsAPI(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}

	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, constants.NotFoundBody)
		return
	}

	s.serveAsset(c, strings.TrimPrefix(c.Request.URL.Path, "/"))
}

// serveAsset writes the named bundle file with a content type derived from its
// extension, or a plain-text 404 when there is no such file
func (s *Server) serveAsset(c *gin.Context, name string) {
	if s.assets == nil || name == "" || !fs.ValidPath(name) {
		c.String(http.StatusNotFound, constants.NotFoundBody)
		return
	}

	content, err := fs.ReadFile(s.assets, name)
	if err != nil {
		// missing files and directories alike
		c.String(http.StatusNotFound, constants.NotFoundBody)
		return
	}

	c.Data(http.StatusOK, contentTypeFor(name), content)
}

// contentTypeFor infers a content type from the file extension
func contentTypeFor(name string) string {
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		return contentType
	}
	return constants.DefaultContentType
}
