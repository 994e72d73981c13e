package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"docvault/internal/blobstore"
	"docvault/internal/store"
)

const (
	allowRemoteEnvKey = "DOCVAULT_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 60 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 60 * time.Second

	loginMaxFailures = 5
	loginWindow      = time.Minute
	loginBlockedFor  = 5 * time.Minute
)

// Options configures a Server.
type Options struct {
	Addr           string
	DBPath         string
	BlobRoot       string
	PublicBaseURL  string
	UploadMaxBytes int64
	Logger         *slog.Logger
}

// Server wraps HTTP handlers for the docvault API.
type Server struct {
	addr           string
	dbPath         string
	blobRoot       string
	store          *store.Store
	blobs          blobstore.Store
	service        *DocumentService
	authService    *AuthService
	loginLimiter   *loginRateLimiter
	logger         *slog.Logger
	publicBaseURL  string
	uploadMaxBytes int64
}

// New creates a new server instance.
func New(st *store.Store, blobs blobstore.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:           opts.Addr,
		dbPath:         opts.DBPath,
		blobRoot:       opts.BlobRoot,
		store:          st,
		blobs:          blobs,
		service:        NewDocumentService(st, blobs, logger),
		authService:    NewAuthService(st),
		loginLimiter:   newLoginRateLimiter(loginMaxFailures, loginWindow, loginBlockedFor),
		logger:         logger,
		publicBaseURL:  strings.TrimRight(opts.PublicBaseURL, "/"),
		uploadMaxBytes: opts.UploadMaxBytes,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
