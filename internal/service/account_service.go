package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// AccountService handles user registration, authentication, and account
// management over the user store.
//
// Lookup case-sensitivity is deliberately uneven and must stay that way:
// existence checks and row addressing are exact-match, while authentication
// and block checks fold case. Both behaviours are part of the store's
// contract with its historical data.
type AccountService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(users repository.UserRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

// RegisterInput contains the data needed to register an account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates input and appends a new active account registered
// today. Registration fails if any row matches the username or email
// exactly.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, input.Username, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to check user existence")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username '%s' or email '%s'", domain.ErrUserAlreadyExists, input.Username, input.Email)
	}

	user := domain.NewUser(input.Username, input.Email, input.Password)
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("email", user.Email).
		Msg("user registered")

	return user, nil
}

// Authenticate verifies credentials and returns the matched user. The
// identifier matches username or email case-insensitively; the password
// comparison is exact. Account status is not consulted here; callers check
// IsBlocked separately.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: email/username and password", ErrFieldRequired)
	}
	if !isValidEmail(identifier) && !isValidUsername(identifier) {
		return nil, ErrInvalidIdentifier
	}

	user, err := s.users.GetByIdentifierFold(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug().Str("identifier", identifier).Msg("unknown identifier during authentication")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if user.Password != password {
		s.logger.Debug().Str("identifier", identifier).Msg("wrong password during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Msg("user authenticated")
	return user, nil
}

// IsBlocked reports whether the account matching identifier
// case-insensitively has Blocked status. Unknown identifiers are not
// blocked; neither are rows old enough to predate the status column.
func (s *AccountService) IsBlocked(ctx context.Context, identifier string) (bool, error) {
	user, err := s.users.GetByIdentifierFold(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user.IsBlocked(), nil
}

// VerifyActive returns domain.ErrUserBlocked when the account matching
// identifier case-insensitively has Blocked status. Unknown identifiers
// pass; they fail later at the credential check instead.
func (s *AccountService) VerifyActive(ctx context.Context, identifier string) error {
	blocked, err := s.IsBlocked(ctx, identifier)
	if err != nil {
		return err
	}
	if blocked {
		s.logger.Info().Str("identifier", identifier).Msg("blocked account rejected")
		return fmt.Errorf("%w: '%s'", domain.ErrUserBlocked, identifier)
	}
	return nil
}

// ResetPassword replaces the password of the row addressed by exact email
// match, preserving registration date and status.
func (s *AccountService) ResetPassword(ctx context.Context, email, newPassword, confirm string) error {
	if email == "" || newPassword == "" || confirm == "" {
		return fmt.Errorf("%w: email, password, and confirmation", ErrFieldRequired)
	}
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	if !isValidPassword(newPassword) {
		return ErrInvalidPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: email '%s'", domain.ErrUserNotFound, email)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user.Password = newPassword
	if err := s.users.Update(ctx, email, user); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().Str("email", email).Msg("password reset")
	return nil
}

// UpdateProfileInput contains the data needed to update an account profile.
type UpdateProfileInput struct {
	OldEmail    string
	NewUsername string
	NewEmail    string
	NewPassword string
}

// UpdateProfile replaces username, email, and password of the row addressed
// by exact OldEmail match, preserving registration date and status.
func (s *AccountService) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	if input.OldEmail == "" || input.NewUsername == "" || input.NewEmail == "" || input.NewPassword == "" {
		return fmt.Errorf("%w: all profile fields", ErrFieldRequired)
	}
	if !isValidUsername(input.NewUsername) {
		return ErrInvalidUsername
	}
	if !isValidEmail(input.NewEmail) {
		return ErrInvalidEmail
	}
	if !isValidPassword(input.NewPassword) {
		return ErrInvalidPassword
	}

	user, err := s.users.GetByEmail(ctx, input.OldEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: email '%s'", domain.ErrUserNotFound, input.OldEmail)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user.Username = input.NewUsername
	user.Email = input.NewEmail
	user.Password = input.NewPassword

	if err := s.users.Update(ctx, input.OldEmail, user); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().
		Str("old_email", input.OldEmail).
		Str("new_email", input.NewEmail).
		Msg("profile updated")
	return nil
}

// SetStatus sets the status of the row addressed by exact email match.
func (s *AccountService) SetStatus(ctx context.Context, email string, status domain.Status) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: email '%s'", domain.ErrUserNotFound, email)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user.Status = status
	if err := s.users.Update(ctx, email, user); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().Str("email", email).Str("status", string(status)).Msg("user status updated")
	return nil
}

// Delete removes the row addressed by exact email match. The user's tickets
// stay in the ledger; there is no cascading.
func (s *AccountService) Delete(ctx context.Context, email string) error {
	if err := s.users.Delete(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: email '%s'", domain.ErrUserNotFound, email)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info().Str("email", email).Msg("user deleted")
	return nil
}

// GetByIdentifier retrieves the first user whose username or email equals
// identifier exactly.
func (s *AccountService) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", domain.ErrUserNotFound, identifier)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

// List returns all users in file order.
func (s *AccountService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return users, nil
}

// validateRegisterInput validates the input for registering an account.
func (s *AccountService) validateRegisterInput(input RegisterInput) error {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return fmt.Errorf("%w: all fields", ErrFieldRequired)
	}
	if !isValidUsername(input.Username) {
		return ErrInvalidUsername
	}
	if !isValidEmail(input.Email) {
		return ErrInvalidEmail
	}
	if !isValidPassword(input.Password) {
		return ErrInvalidPassword
	}
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// isValidEmail applies the historical format check: the address must contain
// both "@" and ".".
func isValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@") && strings.Contains(email, ".")
}

// isValidUsername requires a non-empty name with no digits.
func isValidUsername(username string) bool {
	if username == "" {
		return false
	}
	for _, r := range username {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isValidPassword requires more than 6 characters with at least one
// uppercase letter, one digit, and one symbol. Any rune that is neither a
// letter nor a digit counts as a symbol.
func isValidPassword(password string) bool {
	if len(password) <= 6 {
		return false
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasDigit && hasSymbol
}
