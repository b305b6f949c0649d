package domain

// User is one local account. The password is stored as sha256(password +
// ":" + salt) hex with a per-user random salt; there is no authentication
// beyond this local check.
type User struct {
	Username  string `json:"username"`
	Salt      string `json:"salt"`
	Hash      string `json:"hash"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}
