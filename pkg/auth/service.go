package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/mailer"
	"github.com/libriverse/libriverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// TokenExpiry is how long JWT tokens are valid.
	TokenExpiry = 7 * 24 * time.Hour // 7 days
	// CodeExpiry is how long a password-reset verification code is valid.
	CodeExpiry = 15 * time.Minute
	// codeLength is the number of digits in a verification code.
	codeLength = 6
)

// JWTClaims represents the claims in a JWT token.
type JWTClaims struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	db        *bun.DB
	jwtSecret []byte
	mail      mailer.Mailer
	log       logger.Logger
}

// NewService creates a new auth service.
func NewService(db *bun.DB, jwtSecret string, mail mailer.Mailer) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		mail:      mail,
		log:       logger.New(),
	}
}

// Register creates a new user account. Email uniqueness is case-insensitive.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ? COLLATE NOCASE", email).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict("An account with this email already exists.")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Theme:        models.ThemeLight,
		ViewMode:     models.ViewModeGrid,
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user if valid.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.email = ? COLLATE NOCASE", email).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid email or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid email or password")
	}

	return user, nil
}

// GenerateToken creates a new JWT token for the user.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims. Expired
// tokens fail here the same way malformed ones do.
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// RequestPasswordReset issues a verification code for the email and mails
// it. It reports success whether or not an account exists so the endpoint
// can't be used to probe for registered addresses.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ? COLLATE NOCASE", email).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return nil
	}

	code, err := generateNumericCode(codeLength)
	if err != nil {
		return err
	}

	codeHash, err := HashPassword(code)
	if err != nil {
		return err
	}

	now := time.Now()
	vc := &models.VerificationCode{
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(CodeExpiry),
		CreatedAt: now,
	}

	// A new request supersedes any outstanding code for the email.
	_, err = s.db.NewInsert().
		Model(vc).
		On("CONFLICT (email) DO UPDATE").
		Set("code_hash = EXCLUDED.code_hash").
		Set("expires_at = EXCLUDED.expires_at").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := s.mail.SendResetCode(ctx, email, code); err != nil {
		// Mail failures stay server-side; surfacing them would leak
		// which addresses have accounts.
		s.log.Err(err).Error("failed to send password reset code")
	}

	return nil
}

// VerifyCode checks a password-reset code for the email. Unknown emails,
// expired codes, and wrong codes are indistinguishable to the caller.
func (s *Service) VerifyCode(ctx context.Context, email, code string) error {
	invalid := errcodes.ValidationError("Invalid or expired verification code.")

	vc := &models.VerificationCode{}
	err := s.db.NewSelect().
		Model(vc).
		Where("vc.email = ? COLLATE NOCASE", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invalid
		}
		return errors.WithStack(err)
	}

	if vc.Expired(time.Now()) {
		return invalid
	}

	if bcrypt.CompareHashAndPassword([]byte(vc.CodeHash), []byte(code)) != nil {
		return invalid
	}

	return nil
}

// ResetPassword verifies the code, replaces the user's password, and
// consumes the code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyCode(ctx, email, code); err != nil {
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("password_hash = ?", hashedPassword).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("email = ? COLLATE NOCASE", email).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = s.db.NewDelete().
		Model((*models.VerificationCode)(nil)).
		Where("email = ? COLLATE NOCASE", email).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// generateNumericCode returns n cryptographically random decimal digits.
func generateNumericCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.WithStack(err)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
