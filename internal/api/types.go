package api

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse describes the running server.
type InfoResponse struct {
	DBPath        string `json:"db_path"`
	BlobRoot      string `json:"blob_root"`
	PublicBaseURL string `json:"public_base_url"`
	AuthRequired  bool   `json:"auth_required"`
}

// AuthLoginRequest carries credentials for a login.
type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthLoginResponse returns the bearer token for subsequent requests.
type AuthLoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

// DocumentSubmitRequest uploads one finalized document. Payload is a
// base64 data URI produced by the capture pipeline.
type DocumentSubmitRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

// DocumentRenameRequest updates a document's display name.
type DocumentRenameRequest struct {
	Name string `json:"name"`
}

// DocumentResponse is the wire form of one stored document.
type DocumentResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	URL              string `json:"url,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	CreatedAtDisplay string `json:"created_at_display,omitempty"`
	SizeBytes        int64  `json:"size_bytes,omitempty"`
	StorageExtension string `json:"storage_extension,omitempty"`
}

// DocumentListResponse wraps a listing result.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}
