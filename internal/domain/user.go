package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned when an email address is already taken.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// User represents a registered user. Password holds the bcrypt hash and is
// never serialized.
// swagger:model User
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Age       int       `json:"age"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name  *string
	Email *string
	Phone *string
	Age   *int
	Image *string
}

// UserMonthlyCount is one month bucket of the user-growth statistics.
type UserMonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// PasswordHasher hashes and verifies passwords. Implementations may use
// bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is the identity extracted from a verified access token.
type TokenClaims struct {
	UserID int64
	Email  string
	Role   string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email, role string, expiry time.Duration) (string, error)
	// IssueResetToken issues a short-lived token for the password-reset flow.
	IssueResetToken(userID int64, expiry time.Duration) (string, error)
}

// TokenVerifier verifies tokens and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
	VerifyResetToken(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
}

// UserService defines signup, login, profile and password-reset logic.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*Result, error)
	Login(ctx context.Context, email, password string) (*Result, error)
	GetUserByID(ctx context.Context, id int64) (*Result, error)
	GetAllUsers(ctx context.Context) (*Result, error)
	UpdateUserProfile(ctx context.Context, id int64, in UpdateUserInput) (*Result, error)
	DeleteUser(ctx context.Context, id int64) (*Result, error)
	ForgotPassword(ctx context.Context, email string) (*Result, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*Result, error)
}

// SignupInput is the payload for UserService.Signup.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Age      int    `json:"age"`
}

// UpdateUserInput is the partial payload for UserService.UpdateUserProfile.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Image *string `json:"image,omitempty"`
}

// LoginData is the success payload of UserService.Login.
type LoginData struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
