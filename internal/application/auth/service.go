package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/weekly-events/api/internal/domain"
	"github.com/weekly-events/api/internal/infrastructure/smtp"
	"github.com/weekly-events/api/internal/infrastructure/sns"
	"github.com/weekly-events/api/internal/pkg/id"
)

// VerifyOTPRequest carries a presented passcode plus optional profile fields.
// Name and the secondary contact follow a uniform merge rule: empty means
// "keep current", non-empty means "overwrite".
type VerifyOTPRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

type Service interface {
	RequestEmailOTP(ctx context.Context, email string) (expiresInMinutes int, err error)
	RequestPhoneOTP(ctx context.Context, phoneNumber string) (expiresInMinutes int, err error)
	VerifyEmailOTP(ctx context.Context, req VerifyOTPRequest) (token string, user *domain.User, err error)
	VerifyPhoneOTP(ctx context.Context, req VerifyOTPRequest) (token string, user *domain.User, err error)
}

type otpStore interface {
	Put(ctx context.Context, c *domain.OtpChallenge) error
	Get(ctx context.Context, contact, code string) (*domain.OtpChallenge, error)
	DeleteAllForContact(ctx context.Context, contact string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ClaimContact(ctx context.Context, contact, userID string) error
	ReleaseContact(ctx context.Context, contact, userID string) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	Sign(userID, email, phoneNumber string) (string, error)
}

type service struct {
	otpRepo    otpStore
	userRepo   userStore
	mailer     smtp.Mailer
	smsSender  sns.SMSSender
	signer     tokenSigner
	ttlMinutes int
}

type ServiceDeps struct {
	OtpRepo       otpStore
	UserRepo      userStore
	Mailer        smtp.Mailer
	SMSSender     sns.SMSSender
	Signer        tokenSigner
	OTPTTLMinutes int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		otpRepo:    deps.OtpRepo,
		userRepo:   deps.UserRepo,
		mailer:     deps.Mailer,
		smsSender:  deps.SMSSender,
		signer:     deps.Signer,
		ttlMinutes: deps.OTPTTLMinutes,
	}
}

// RequestEmailOTP issues a fresh challenge for the email, superseding any
// previously issued codes. Delivery failure does not roll back the stored
// challenge; the client still sees success and the code simply expires.
func (s *service) RequestEmailOTP(ctx context.Context, email string) (int, error) {
	contact := normalizeEmail(email)
	if contact == "" {
		return 0, fmt.Errorf("valid email is required: %w", domain.ErrBadRequest)
	}
	code, err := s.issue(ctx, contact, domain.ChannelEmail)
	if err != nil {
		return 0, err
	}
	body := fmt.Sprintf("Your Weekly OTP is %s. It expires in %d minutes.", code, s.ttlMinutes)
	if err := s.mailer.SendEmail(contact, "Your Weekly login code", body); err != nil {
		slog.Warn("failed to send OTP email", "contact", contact, "err", err)
	}
	return s.ttlMinutes, nil
}

// RequestPhoneOTP is the SMS variant of RequestEmailOTP.
func (s *service) RequestPhoneOTP(ctx context.Context, phoneNumber string) (int, error) {
	contact := strings.TrimSpace(phoneNumber)
	if contact == "" {
		return 0, fmt.Errorf("valid phone number is required: %w", domain.ErrBadRequest)
	}
	code, err := s.issue(ctx, contact, domain.ChannelSMS)
	if err != nil {
		return 0, err
	}
	msg := fmt.Sprintf("Your Weekly OTP is %s. It expires in %d minutes.", code, s.ttlMinutes)
	if s.smsSender == nil {
		slog.Info("SMS sender not configured, logging OTP instead", "contact", contact, "code", code)
		return s.ttlMinutes, nil
	}
	if err := s.smsSender.SendSMS(ctx, contact, msg); err != nil {
		slog.Warn("failed to send OTP SMS", "contact", contact, "err", err)
	}
	return s.ttlMinutes, nil
}

// issue deletes all live challenges for the contact, then stores a new
// 6-digit code. The delete-before-insert ordering guarantees a new request
// immediately invalidates older codes, not just after their TTL.
func (s *service) issue(ctx context.Context, contact, channel string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.otpRepo.DeleteAllForContact(ctx, contact); err != nil {
		return "", err
	}
	c := &domain.OtpChallenge{
		Contact:   contact,
		Code:      code,
		Channel:   channel,
		ExpiresAt: time.Now().Add(time.Duration(s.ttlMinutes) * time.Minute).Unix(),
	}
	if err := s.otpRepo.Put(ctx, c); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) VerifyEmailOTP(ctx context.Context, req VerifyOTPRequest) (string, *domain.User, error) {
	contact := normalizeEmail(req.Email)
	if contact == "" {
		return "", nil, fmt.Errorf("valid email is required: %w", domain.ErrBadRequest)
	}
	if req.Code == "" {
		return "", nil, fmt.Errorf("OTP code is required: %w", domain.ErrBadRequest)
	}
	if err := s.checkChallenge(ctx, contact, req.Code); err != nil {
		return "", nil, err
	}

	u, err := s.resolveUser(ctx, resolveParams{
		primary:       contact,
		primaryIsMail: true,
		name:          strings.TrimSpace(req.Name),
		secondary:     strings.TrimSpace(req.PhoneNumber),
	})
	if err != nil {
		return "", nil, err
	}

	s.consume(ctx, contact)

	token, err := s.signer.Sign(u.UserID, u.Email, u.PhoneNumber)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) VerifyPhoneOTP(ctx context.Context, req VerifyOTPRequest) (string, *domain.User, error) {
	contact := strings.TrimSpace(req.PhoneNumber)
	if contact == "" {
		return "", nil, fmt.Errorf("valid phone number is required: %w", domain.ErrBadRequest)
	}
	if req.Code == "" {
		return "", nil, fmt.Errorf("OTP code is required: %w", domain.ErrBadRequest)
	}
	if err := s.checkChallenge(ctx, contact, req.Code); err != nil {
		return "", nil, err
	}

	u, err := s.resolveUser(ctx, resolveParams{
		primary:       contact,
		primaryIsMail: false,
		name:          strings.TrimSpace(req.Name),
		secondary:     normalizeEmail(req.Email),
	})
	if err != nil {
		return "", nil, err
	}

	s.consume(ctx, contact)

	token, err := s.signer.Sign(u.UserID, u.Email, u.PhoneNumber)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// checkChallenge verifies an exact (contact, code) match that has not passed
// its expiry. Wrong code and expired code collapse into the same error so the
// response leaks nothing about which one it was.
func (s *service) checkChallenge(ctx context.Context, contact, code string) error {
	c, err := s.otpRepo.Get(ctx, contact, code)
	if err != nil {
		// Only an absent challenge means the code is wrong; a store failure
		// must not masquerade as a rejected OTP.
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no matching challenge: %w", domain.ErrInvalidOTP)
		}
		return err
	}
	if c.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("challenge expired: %w", domain.ErrInvalidOTP)
	}
	return nil
}

// consume purges every challenge for the contact so a verified code can never
// be replayed. Failure is logged, not returned: the verification already
// succeeded and the leftover rows expire on their own.
func (s *service) consume(ctx context.Context, contact string) {
	if err := s.otpRepo.DeleteAllForContact(ctx, contact); err != nil {
		slog.Warn("failed to purge OTP challenges", "contact", contact, "err", err)
	}
}

type resolveParams struct {
	primary       string
	primaryIsMail bool
	name          string
	secondary     string // the other contact identifier, already normalized
}

// resolveUser creates the user on first verification and merges profile
// fields on subsequent ones. The GSI probe rejects obvious contact conflicts
// early; the store's conditional claim on the contact markers is the
// authoritative uniqueness guard either way.
func (s *service) resolveUser(ctx context.Context, p resolveParams) (*domain.User, error) {
	lookup := s.userRepo.GetByEmail
	if !p.primaryIsMail {
		lookup = s.userRepo.GetByPhone
	}

	now := time.Now().UTC()
	u, err := lookup(ctx, p.primary)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if p.secondary != "" {
			if err := s.checkSecondaryFree(ctx, p.primaryIsMail, p.secondary, ""); err != nil {
				return nil, err
			}
		}
		u = &domain.User{
			UserID:     id.New(),
			Name:       p.name,
			VerifiedAt: &now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if p.primaryIsMail {
			u.Email = p.primary
			u.PhoneNumber = p.secondary
		} else {
			u.PhoneNumber = p.primary
			u.Email = p.secondary
		}
		if err := s.userRepo.Create(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}

	// Existing user: uniform partial update. Empty inputs never erase fields.
	updates := map[string]interface{}{
		"verified_at": now.Format(time.RFC3339),
	}
	if p.name != "" {
		updates["name"] = p.name
		u.Name = p.name
	}
	if p.secondary != "" {
		if err := s.checkSecondaryFree(ctx, p.primaryIsMail, p.secondary, u.UserID); err != nil {
			return nil, err
		}
		if err := s.userRepo.ClaimContact(ctx, p.secondary, u.UserID); err != nil {
			return nil, err
		}
		old := u.PhoneNumber
		if !p.primaryIsMail {
			old = u.Email
		}
		if old != "" && old != p.secondary {
			if err := s.userRepo.ReleaseContact(ctx, old, u.UserID); err != nil {
				slog.Warn("failed to release replaced contact", "contact", old, "err", err)
			}
		}
		if p.primaryIsMail {
			updates["phone_number"] = p.secondary
			u.PhoneNumber = p.secondary
		} else {
			updates["email"] = p.secondary
			u.Email = p.secondary
		}
	}
	if err := s.userRepo.Update(ctx, u.UserID, updates); err != nil {
		return nil, err
	}
	u.VerifiedAt = &now
	return u, nil
}

// checkSecondaryFree fails with ErrIdentityConflict when the secondary
// contact is already linked to a user other than selfID.
func (s *service) checkSecondaryFree(ctx context.Context, primaryIsMail bool, secondary, selfID string) error {
	lookup := s.userRepo.GetByPhone
	if !primaryIsMail {
		lookup = s.userRepo.GetByEmail
	}
	other, err := lookup(ctx, secondary)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // not taken
		}
		return err
	}
	if other.UserID != selfID {
		return fmt.Errorf("contact already linked to another user: %w", domain.ErrIdentityConflict)
	}
	return nil
}

// generateCode returns a uniformly random 6-digit numeric code. Codes are not
// globally unique; uniqueness only matters among live challenges per contact.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
