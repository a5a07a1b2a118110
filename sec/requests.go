package sec

// LoginRequestBody is the body of POST /api/auth/login
type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	prefixLen := len(prefix)
	if len(header) > prefixLen && header[:prefixLen] == prefix {
		return header[prefixLen:]
	}
	return ""
}
