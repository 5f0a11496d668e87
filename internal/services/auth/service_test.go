package auth

import (
	"regexp"
	"testing"
	"time"

	"campuskart/internal/models"
	"campuskart/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

type MockOtpRepo struct {
	mock.Mock
}

func (m *MockOtpRepo) Create(otp *models.OtpVerification) error {
	args := m.Called(otp)
	return args.Error(0)
}

func (m *MockOtpRepo) FindByUserID(userID uint) ([]models.OtpVerification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OtpVerification), args.Error(1)
}

func (m *MockOtpRepo) DeleteAllForUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMailer struct {
	mock.Mock
	lastBody string
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	m.lastBody = htmlBody
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

var otpInBody = regexp.MustCompile(`\d{4}`)

func hashFor(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) (Service, *MockUserRepo, *MockOtpRepo, *MockMailer) {
	t.Setenv("JWT_SECRET", "test-secret")
	userRepo := new(MockUserRepo)
	otpRepo := new(MockOtpRepo)
	mail := new(MockMailer)
	return NewService(userRepo, otpRepo, mail), userRepo, otpRepo, mail
}

func TestRegister(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, _, err := svc.Register("", "a@x.edu", "pw")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("verified email is rejected", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.On("GetByEmail", "a@x.edu").Return(&models.User{Email: "a@x.edu", IsVerified: true}, nil)

		_, _, err := svc.Register("Alice", "a@x.edu", "password")
		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("new user gets record, otp and token", func(t *testing.T) {
		svc, userRepo, otpRepo, mail := newTestService(t)
		userRepo.On("GetByEmail", "a@x.edu").Return(nil, repositories.ErrUserNotFound)
		userRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*models.User).ID = 7
		}).Return(nil)

		var stored *models.OtpVerification
		otpRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(0).(*models.OtpVerification)
		}).Return(nil)
		mail.On("Send", "a@x.edu", mock.Anything, mock.Anything).Return(nil)

		user, token, err := svc.Register("Alice", "a@x.edu", "password")
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.False(t, user.IsVerified)
		assert.NotEmpty(t, token)

		// The stored hash must match the code that went out by email.
		require.NotNil(t, stored)
		assert.Equal(t, uint(7), stored.UserID)
		assert.WithinDuration(t, time.Now().Add(OtpTTL), stored.ExpiresAt, time.Minute)
		code := otpInBody.FindString(mail.lastBody)
		require.Len(t, code, 4)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)))

		// The stored password is a hash, never the plaintext.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password")))

		userRepo.AssertExpectations(t)
		otpRepo.AssertExpectations(t)
	})

	t.Run("re-register unverified overwrites in place", func(t *testing.T) {
		svc, userRepo, otpRepo, mail := newTestService(t)
		existing := &models.User{Name: "Old", Email: "a@x.edu", Password: hashFor(t, "oldpw"), IsVerified: false}
		existing.ID = 3
		userRepo.On("GetByEmail", "a@x.edu").Return(existing, nil)
		userRepo.On("Update", existing).Return(nil)
		otpRepo.On("Create", mock.Anything).Return(nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		user, _, err := svc.Register("New Name", "a@x.edu", "newpw")
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		assert.Equal(t, "New Name", user.Name)
		assert.False(t, user.IsVerified)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpw")))

		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("mail failure is not fatal", func(t *testing.T) {
		svc, userRepo, otpRepo, mail := newTestService(t)
		userRepo.On("GetByEmail", "a@x.edu").Return(nil, repositories.ErrUserNotFound)
		userRepo.On("Create", mock.Anything).Return(nil)
		otpRepo.On("Create", mock.Anything).Return(nil)
		mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, token, err := svc.Register("Alice", "a@x.edu", "password")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestVerifyOtp(t *testing.T) {
	now := time.Now()

	t.Run("missing input", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, _, err := svc.VerifyOtp(0, "1234")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, _, err = svc.VerifyOtp(1, "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("no records", func(t *testing.T) {
		svc, _, otpRepo, _ := newTestService(t)
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{}, nil)

		_, _, err := svc.VerifyOtp(1, "1234")
		assert.ErrorIs(t, err, ErrOtpNotFound)
	})

	t.Run("all records expired", func(t *testing.T) {
		svc, _, otpRepo, _ := newTestService(t)
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{
			{UserID: 1, CodeHash: hashFor(t, "1234"), CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		}, nil)

		_, _, err := svc.VerifyOtp(1, "1234")
		assert.ErrorIs(t, err, ErrOtpExpired)
	})

	t.Run("code matching an older record is rejected", func(t *testing.T) {
		svc, _, otpRepo, _ := newTestService(t)
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{
			{UserID: 1, CodeHash: hashFor(t, "9999"), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
			{UserID: 1, CodeHash: hashFor(t, "1111"), CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour)},
		}, nil)

		_, _, err := svc.VerifyOtp(1, "1111")
		assert.ErrorIs(t, err, ErrInvalidOtp)
		otpRepo.AssertNotCalled(t, "DeleteAllForUser", mock.Anything)
	})

	t.Run("expired newer record does not fall back to older valid one", func(t *testing.T) {
		svc, _, otpRepo, _ := newTestService(t)
		// The newest record is expired, the older one is still valid and is
		// therefore the latest valid record: its code must verify.
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{
			{UserID: 1, CodeHash: hashFor(t, "9999"), CreatedAt: now, ExpiresAt: now.Add(-time.Minute)},
			{UserID: 1, CodeHash: hashFor(t, "1111"), CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour)},
		}, nil)

		_, _, err := svc.VerifyOtp(1, "9999")
		assert.ErrorIs(t, err, ErrInvalidOtp)
	})

	t.Run("successful verification purges all records", func(t *testing.T) {
		svc, userRepo, otpRepo, _ := newTestService(t)
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{
			{UserID: 1, CodeHash: hashFor(t, "4321"), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
			{UserID: 1, CodeHash: hashFor(t, "8888"), CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour)},
		}, nil)
		otpRepo.On("DeleteAllForUser", uint(1)).Return(int64(2), nil)

		stored := &models.User{Email: "a@x.edu"}
		stored.ID = 1
		userRepo.On("GetByID", uint(1)).Return(stored, nil)
		userRepo.On("Update", stored).Return(nil)

		user, token, err := svc.VerifyOtp(1, "4321")
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
		assert.NotEmpty(t, token)
		otpRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("losing the purge race fails", func(t *testing.T) {
		svc, userRepo, otpRepo, _ := newTestService(t)
		otpRepo.On("FindByUserID", uint(1)).Return([]models.OtpVerification{
			{UserID: 1, CodeHash: hashFor(t, "4321"), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		}, nil)
		otpRepo.On("DeleteAllForUser", uint(1)).Return(int64(0), nil)

		_, _, err := svc.VerifyOtp(1, "4321")
		assert.ErrorIs(t, err, ErrOtpNotFound)
		userRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.On("GetByEmail", "nobody@x.edu").Return(nil, repositories.ErrUserNotFound)

		_, _, err := svc.Login("nobody@x.edu", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified user", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.On("GetByEmail", "a@x.edu").Return(&models.User{
			Email: "a@x.edu", Password: hashFor(t, "pw"), IsVerified: false,
		}, nil)

		_, _, err := svc.Login("a@x.edu", "pw")
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.On("GetByEmail", "a@x.edu").Return(&models.User{
			Email: "a@x.edu", Password: hashFor(t, "pw"), IsVerified: true,
		}, nil)

		_, _, err := svc.Login("a@x.edu", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		stored := &models.User{Email: "a@x.edu", Password: hashFor(t, "pw"), IsVerified: true}
		stored.ID = 5
		userRepo.On("GetByEmail", "a@x.edu").Return(stored, nil)

		user, token, err := svc.Login("a@x.edu", "pw")
		require.NoError(t, err)
		assert.Equal(t, uint(5), user.ID)
		assert.NotEmpty(t, token)
	})
}

func TestUpdateProfile(t *testing.T) {
	newStored := func() *models.User {
		u := &models.User{
			Name: "Alice", Email: "a@x.edu", IsVerified: true,
			HostelType: "Female", HostelBlock: "A Block", MobileNumber: "9876543210",
			IsProfileComplete: true,
		}
		u.ID = 1
		return u
	}

	t.Run("full payload completes profile", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		stored := &models.User{Name: "Alice", Email: "a@x.edu", IsVerified: true}
		stored.ID = 1
		userRepo.On("GetByID", uint(1)).Return(stored, nil)
		userRepo.On("Update", stored).Return(nil)

		user, err := svc.UpdateProfile(1, ProfileUpdate{
			Name: "Alice", HostelType: "Female", HostelBlock: "A Block", MobileNumber: "9876543210",
		})
		require.NoError(t, err)
		assert.True(t, user.IsProfileComplete)
		assert.Equal(t, "A Block", user.HostelBlock)
	})

	t.Run("omitting a field flips completeness false but retains value", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		stored := newStored()
		userRepo.On("GetByID", uint(1)).Return(stored, nil)
		userRepo.On("Update", stored).Return(nil)

		user, err := svc.UpdateProfile(1, ProfileUpdate{
			Name: "Alice", HostelType: "Female", HostelBlock: "B Block",
		})
		require.NoError(t, err)
		assert.False(t, user.IsProfileComplete)
		// The stored mobile number is retained even though completeness
		// was judged on the submitted payload.
		assert.Equal(t, "9876543210", user.MobileNumber)
		assert.Equal(t, "B Block", user.HostelBlock)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t)
		userRepo.On("GetByID", uint(9)).Return(nil, repositories.ErrUserNotFound)

		_, err := svc.UpdateProfile(9, ProfileUpdate{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
