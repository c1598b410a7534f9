package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type userService struct {
	userRepo     domain.UserRepository
	eventRepo    domain.EventRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	verifier     domain.TokenVerifier
	emailService domain.EmailService
	logger       *slog.Logger
	tokenExpiry  time.Duration
	resetTTL     time.Duration
}

// NewUserService wires the user account flows: signup, login, profile,
// password reset. The event repository is touched only to propagate
// contact-info changes onto events owned by the user.
func NewUserService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	emailService domain.EmailService,
	logger *slog.Logger,
	tokenExpiry, resetTTL time.Duration,
) domain.UserService {
	return &userService{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		hasher:       hasher,
		issuer:       issuer,
		verifier:     verifier,
		emailService: emailService,
		logger:       logger,
		tokenExpiry:  tokenExpiry,
		resetTTL:     resetTTL,
	}
}

func validateSignup(in domain.SignupInput) []string {
	var errs []string
	if in.Name == "" {
		errs = append(errs, "name is required")
	}
	if in.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(in.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	if in.Phone == "" {
		errs = append(errs, "phone is required")
	}
	if in.Password == "" {
		errs = append(errs, "password is required")
	}
	if in.Role == "" {
		errs = append(errs, "role is required")
	}
	if in.Age <= 0 {
		errs = append(errs, "age is required")
	}
	return errs
}

func (s *userService) Signup(ctx context.Context, in domain.SignupInput) (*domain.Result, error) {
	if errs := validateSignup(in); len(errs) > 0 {
		return domain.Soft(http.StatusBadRequest, errs[0]), nil
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return domain.Soft(http.StatusBadRequest, "User with this email already exists"), nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hash,
		Role:     strings.ToLower(in.Role),
		Age:      in.Age,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.Soft(http.StatusBadRequest, "User with this email already exists"), nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Fire-and-forget: delivery failures are logged, never surfaced.
	if err := s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeEmailData{
		Email: user.Email,
		Name:  user.Name,
	}); err != nil {
		s.logger.Warn("welcome email failed", "email", user.Email, "err", err)
	}

	return domain.OK("User signup successful", user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.Result, error) {
	if email == "" || !emailRegex.MatchString(email) {
		return domain.Soft(http.StatusBadRequest, "email must be a valid email address"), nil
	}
	if password == "" {
		return domain.Soft(http.StatusBadRequest, "password is required"), nil
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Soft(http.StatusUnprocessableEntity, "User with this email does not exist."), nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		return domain.Soft(http.StatusUnauthorized, "Invalid Password."), nil
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user.Password = ""
	return domain.OK("Login successful", &domain.LoginData{AccessToken: token, User: user}), nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.Result, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.Password = ""
	return domain.OK("User found successfully.", user), nil
}

func (s *userService) GetAllUsers(ctx context.Context) (*domain.Result, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		u.Password = ""
	}
	return domain.OK("User list retrieved successfully.", users), nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.Result, error) {
	if in.Email != nil && !emailRegex.MatchString(*in.Email) {
		return domain.Soft(http.StatusBadRequest, "email must be a valid email address"), nil
	}
	if in.Age != nil && (*in.Age < 0 || *in.Age > 150) {
		return domain.Soft(http.StatusBadRequest, "age must be between 0 and 150"), nil
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	updated, err := s.userRepo.Update(ctx, id, domain.UserUpdate{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Age:   in.Age,
		Image: in.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.Soft(http.StatusBadRequest, "User with this email already exists"), nil
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	updated.Password = ""

	// One-way propagation of denormalized contact fields onto the user's
	// events. Events only re-sync on explicit profile updates.
	if in.Email != nil || in.Phone != nil {
		if err := s.eventRepo.UpdateContactInfo(ctx, id, in.Email, in.Phone); err != nil {
			return nil, fmt.Errorf("propagate contact info: %w", err)
		}
	}

	return domain.OK("User profile updated successfully", updated), nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) (*domain.Result, error) {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return domain.OK("User deleted successfully", nil), nil
}

func (s *userService) ForgotPassword(ctx context.Context, email string) (*domain.Result, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	token, err := s.issuer.IssueResetToken(user.ID, s.resetTTL)
	if err != nil {
		return nil, fmt.Errorf("issue reset token: %w", err)
	}

	if err := s.emailService.SendPasswordReset(ctx, &domain.PasswordResetEmailData{
		Email:     user.Email,
		ResetLink: "eventx://reset-password?token=" + token,
	}); err != nil {
		s.logger.Warn("password reset email failed", "email", user.Email, "err", err)
	}

	return domain.OK("Reset password email sent", nil), nil
}

func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.Result, error) {
	if newPassword == "" {
		return domain.Soft(http.StatusBadRequest, "newPassword is required"), nil
	}

	userID, err := s.verifier.VerifyResetToken(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	return domain.OK("Password reset successful", nil), nil
}
