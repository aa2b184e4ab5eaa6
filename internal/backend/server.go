package backend

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	QuickSearchPath = "/api/crm/search/quick"
	defaultLimit    = 5
	maxLimit        = 50
)

// Options configures the mock server
type Options struct {
	Token   string        // required bearer token; empty disables auth
	Latency time.Duration // added before every search response
}

type Server struct {
	data *Dataset
	opts Options
}

func NewServer(data *Dataset, opts Options) *Server {
	if data == nil {
		data = &Dataset{}
	}
	return &Server{data: data, opts: opts}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.Health)

	api := r.Group("/api/crm")
	api.Use(s.requireToken())
	api.GET("/search/quick", s.QuickSearch)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) QuickSearch(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxLimit)
	}

	if s.opts.Latency > 0 {
		select {
		case <-time.After(s.opts.Latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	c.JSON(http.StatusOK, s.data.Search(q, limit))
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.opts.Token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s q=%q status=%d request_id=%s took=%s",
			c.Request.Method, c.Request.URL.Path, c.Query("q"), c.Writer.Status(),
			c.GetHeader("X-Request-ID"), time.Since(start))
	}
}
