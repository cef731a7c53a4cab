package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "go-leavehub/internal/auth/errors"
	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
)

type fakeUserRepo struct {
	createFn         func(ctx context.Context, user *User) error
	getByEmailFn     func(ctx context.Context, email string) (*User, error)
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*User, error)
	updatePasswordFn func(ctx context.Context, id uuid.UUID, hashed string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error { return f.createFn(ctx, user) }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return f.updatePasswordFn(ctx, id, hashed)
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository          { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeEmployeeRepo) Exists(ctx context.Context, id string) (bool, error)    { return true, nil }

var testTokens = TokenConfig{
	Secret:     []byte("test-secret"),
	AccessTTL:  time.Minute,
	RefreshTTL: time.Hour,
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	employeeID := uuid.New()
	return &User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Test User",
		Email:      "user@example.com",
		Password:   string(hashed),
		Role:       domain.RoleEmployee,
		IsActive:   true,
	}
}

func TestService_Login_IssuesTokenWithClaims(t *testing.T) {
	user := testUser(t, "rahasia123")
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) { return user, nil },
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	accessToken, refreshToken, resp, err := svc.Login(context.Background(), user.Email, "rahasia123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, user.Email, resp.Email)

	parsed, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		return testTokens.Secret, nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
	assert.Equal(t, domain.RoleEmployee, claims["role"])
}

func TestService_Login_WrongPassword(t *testing.T) {
	user := testUser(t, "rahasia123")
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) { return user, nil },
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	_, _, _, err := svc.Login(context.Background(), user.Email, "salah")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "x")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_DisabledAccount(t *testing.T) {
	user := testUser(t, "rahasia123")
	user.IsActive = false
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) { return user, nil },
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	_, _, _, err := svc.Login(context.Background(), user.Email, "rahasia123")
	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}

func TestService_RefreshToken_RoundTrip(t *testing.T) {
	user := testUser(t, "rahasia123")
	repo := &fakeUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) { return user, nil },
		getByIDFn:    func(ctx context.Context, id uuid.UUID) (*User, error) { return user, nil },
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	_, refreshToken, _, err := svc.Login(context.Background(), user.Email, "rahasia123")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, user.ID.String(), resp.ID)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, &fakeEmployeeRepo{}, nil, testTokens)

	_, _, _, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_Register_DefaultsRole(t *testing.T) {
	var created *User
	repo := &fakeUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(id)}, nil
		},
	}
	svc := NewService(repo, emplRepo, nil, testTokens)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		EmployeeID: uuid.NewString(),
		Email:      "new@example.com",
		Name:       "New User",
		Password:   "rahasia123",
		Role:       "Superuser", // unknown role falls back
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, resp.Role)
	assert.NotEqual(t, "rahasia123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("rahasia123")))
}

func TestService_Register_UnknownEmployee(t *testing.T) {
	emplRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(&fakeUserRepo{}, emplRepo, nil, testTokens)

	_, err := svc.Register(context.Background(), RegisterRequest{
		EmployeeID: uuid.NewString(),
		Email:      "new@example.com",
		Name:       "New User",
		Password:   "rahasia123",
	})
	assert.Error(t, err)
}

func TestService_ChangePassword(t *testing.T) {
	user := testUser(t, "lama12345")
	var updatedHash string
	repo := &fakeUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) { return user, nil },
		updatePasswordFn: func(ctx context.Context, id uuid.UUID, hashed string) error {
			updatedHash = hashed
			return nil
		},
	}
	svc := NewService(repo, &fakeEmployeeRepo{}, nil, testTokens)

	err := svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "lama12345",
		NewPassword:     "baru12345",
	})
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updatedHash), []byte("baru12345")))

	err = svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "salah",
		NewPassword:     "baru12345",
	})
	assert.ErrorIs(t, err, autherrors.ErrWrongPassword)
}
