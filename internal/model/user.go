package model

// User represents an account record stored in the `users` table.
// The password hash is an opaque bcrypt digest and must never be
// serialized into API responses, hence the "-" json tag.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password; never returned to clients.
//  CreatedAt    – creation timestamp ("2006-01-02 15:04:05", UTC).
type User struct {
	ID           uint64 `json:"id"`         // users.id
	Username     string `json:"username"`   // users.username
	PasswordHash string `json:"-"`          // users.password_hash
	CreatedAt    string `json:"created_at"` // users.created_at
}
