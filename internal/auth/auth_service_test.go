package auth_test

import (
	"context"
	"errors"
	"testing"

	"go-workforce/internal/account"
	accounterrors "go-workforce/internal/account/errors"
	accountMock "go-workforce/internal/account/mock"
	"go-workforce/internal/auth"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/domain"
	"go-workforce/internal/employee"
	employeeMock "go-workforce/internal/employee/mock"
	"go-workforce/internal/events"
	"go-workforce/internal/hr"
	hrerrors "go-workforce/internal/hr/errors"
	hrMock "go-workforce/internal/hr/mock"
	"go-workforce/internal/messaging/kafka"
	kafkaMock "go-workforce/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   auth.Service
	tokens    *auth.TokenIssuer
	accounts  *accountMock.MockRepository
	employees *employeeMock.MockRepository
	hrs       *hrMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
}

func setupAuthServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		sqlMock:   sqlMock,
		tokens:    auth.NewTokenIssuer("test-secret", 0),
		accounts:  accountMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		hrs:       hrMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
	}
	deps.service = auth.NewService(db, deps.accounts, deps.employees, deps.hrs, deps.outbox, deps.tokens)
	return deps
}

func storedAccount(t *testing.T, role domain.Role, password string) *account.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &account.Account{
		ID:           uuid.New(),
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("employee gets account profile and token", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "ana@example.com").Return(false, nil)
		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *account.Account) error {
			assert.Equal(t, domain.RoleEmployee, a.Role)
			assert.NotEqual(t, "secret123", a.PasswordHash)
			return nil
		})
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *employee.EmployeeProfile) error {
			assert.Equal(t, "Ana", p.FirstName)
			assert.Equal(t, employee.DefaultDepartment, p.Department)
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.service.Register(ctx, auth.RegisterRequest{
			Name:      "Ana Lima",
			Email:     " Ana@Example.com ",
			Password:  "secret123",
			Role:      "employee",
			FirstName: "Ana",
			LastName:  "Lima",
		})

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", resp.Email)
		assert.Equal(t, "employee", resp.Role)

		subject, err := d.tokens.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.ID, subject)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr gets default profile", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "hr@example.com").Return(false, nil)
		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.hrs.EXPECT().WithTx(gomock.Any()).Return(d.hrs)
		d.hrs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *hr.HRProfile) error {
			assert.Equal(t, hr.DefaultDepartment, p.Department)
			assert.Equal(t, hr.DefaultPosition, p.Position)
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "Hana", Email: "hr@example.com", Password: "secret123", Role: "hr",
		})

		require.NoError(t, err)
		assert.Equal(t, "hr", resp.Role)
	})

	t.Run("employer has no profile", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "boss@example.com").Return(false, nil)
		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "Boss", Email: "boss@example.com", Password: "secret123", Role: "employer",
		})

		require.NoError(t, err)
		assert.Equal(t, "employer", resp.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		d := setupAuthServiceTest(t)

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "X", Email: "x@example.com", Password: "secret123", Role: "admin",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("employee without names", func(t *testing.T) {
		d := setupAuthServiceTest(t)

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "X", Email: "x@example.com", Password: "secret123", Role: "employee", FirstName: "X",
		})

		assert.ErrorIs(t, err, autherrors.ErrMissingEmployeeName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "ana@example.com").Return(true, nil)

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "Ana", Email: "ana@example.com", Password: "secret123", Role: "employer",
		})

		assert.ErrorIs(t, err, accounterrors.ErrEmailAlreadyRegistered)
	})

	t.Run("profile failure rolls back account", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "ana@example.com").Return(false, nil)
		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))
		d.sqlMock.ExpectRollback()

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Name: "Ana", Email: "ana@example.com", Password: "secret123", Role: "employee",
			FirstName: "Ana", LastName: "Lima",
		})

		assert.Error(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleHR, "secret123")
		d.accounts.EXPECT().FindByEmail(ctx, "ana@example.com").Return(acc, nil)

		resp, err := d.service.Login(ctx, auth.LoginRequest{Email: "ANA@example.com", Password: "secret123"})

		require.NoError(t, err)
		assert.Equal(t, acc.ID.String(), resp.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleHR, "secret123")
		d.accounts.EXPECT().FindByEmail(ctx, "ana@example.com").Return(acc, nil)
		d.accounts.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, accounterrors.ErrAccountNotFound)

		_, wrongPassword := d.service.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "nope"})
		_, unknownEmail := d.service.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "nope"})

		assert.ErrorIs(t, wrongPassword, autherrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword, unknownEmail)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().FindByEmail(ctx, "ana@example.com").Return(nil, errors.New("db down"))

		_, err := d.service.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "x"})

		assert.EqualError(t, err, "db down")
	})
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("hr includes profile", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleHR, "x")
		d.accounts.EXPECT().FindByID(ctx, acc.ID.String()).Return(acc, nil)
		d.hrs.EXPECT().FindByAccountID(ctx, acc.ID.String()).
			Return(hr.NewProfile(acc.ID, hr.ProfileFields{Department: "People"}), nil)

		resp, err := d.service.GetProfile(ctx, acc.ID.String())

		require.NoError(t, err)
		require.NotNil(t, resp.HR)
		assert.Equal(t, "People", resp.HR.Department)
		assert.Equal(t, "Ana", resp.HR.Name)
		assert.Nil(t, resp.Employee)
	})

	t.Run("missing hr profile still returns account", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleHR, "x")
		d.accounts.EXPECT().FindByID(ctx, acc.ID.String()).Return(acc, nil)
		d.hrs.EXPECT().FindByAccountID(ctx, acc.ID.String()).Return(nil, hrerrors.ErrHRProfileNotFound)

		resp, err := d.service.GetProfile(ctx, acc.ID.String())

		require.NoError(t, err)
		assert.Nil(t, resp.HR)
		assert.Equal(t, acc.ID.String(), resp.Account.ID)
	})

	t.Run("deleted account", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().FindByID(ctx, "gone").Return(nil, accounterrors.ErrAccountNotFound)

		_, err := d.service.GetProfile(ctx, "gone")

		assert.ErrorIs(t, err, accounterrors.ErrAccountNotFound)
	})
}

func TestService_UpdateAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("employee updates both rows and emits event", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleEmployee, "x")
		old := "old-handle"
		acc.AvatarHandle = &old
		id := acc.ID.String()

		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().FindByID(ctx, id).Return(acc, nil)
		d.accounts.EXPECT().UpdateAvatar(ctx, id, "https://cdn.example.com/a.png", "new-handle").Return(nil)
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().UpdateAvatar(ctx, id, "https://cdn.example.com/a.png", "new-handle").Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.AccountAvatarReplacedEventType, e.EventType)
			assert.Equal(t, events.AccountLifecycleTopic, e.Topic)
			assert.Contains(t, string(e.Payload), "old-handle")
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.service.UpdateAvatar(ctx, id, auth.UpdateAvatarRequest{
			URL: "https://cdn.example.com/a.png", Handle: "new-handle",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AvatarURL)
		assert.Equal(t, "https://cdn.example.com/a.png", *resp.AvatarURL)
		require.NotNil(t, resp.AvatarHandle)
		assert.Equal(t, "new-handle", *resp.AvatarHandle)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("employer skips profile", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleEmployer, "x")
		id := acc.ID.String()

		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().FindByID(ctx, id).Return(acc, nil)
		d.accounts.EXPECT().UpdateAvatar(ctx, id, "https://cdn.example.com/b.png", "").Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		_, err := d.service.UpdateAvatar(ctx, id, auth.UpdateAvatarRequest{URL: "https://cdn.example.com/b.png"})

		require.NoError(t, err)
	})

	t.Run("blank handle clears the stored handle", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleEmployer, "x")
		old := "old-handle"
		acc.AvatarHandle = &old
		id := acc.ID.String()

		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().FindByID(ctx, id).Return(acc, nil)
		d.accounts.EXPECT().UpdateAvatar(ctx, id, "https://cdn.example.com/c.png", "").Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		resp, err := d.service.UpdateAvatar(ctx, id, auth.UpdateAvatarRequest{
			URL: "https://cdn.example.com/c.png", Handle: "  ",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.AvatarHandle)
		require.NotNil(t, resp.AvatarURL)
		assert.Equal(t, "https://cdn.example.com/c.png", *resp.AvatarURL)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		acc := storedAccount(t, domain.RoleEmployer, "x")
		id := acc.ID.String()

		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().FindByID(ctx, id).Return(acc, nil)
		d.accounts.EXPECT().UpdateAvatar(ctx, id, gomock.Any(), gomock.Any()).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("outbox down"))
		d.sqlMock.ExpectRollback()

		_, err := d.service.UpdateAvatar(ctx, id, auth.UpdateAvatarRequest{URL: "https://cdn.example.com/b.png"})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestService_ProvisionEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("salary and join date are stored", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		d.accounts.EXPECT().ExistsByEmail(ctx, "new@example.com").Return(false, nil)
		d.sqlMock.ExpectBegin()
		d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *account.Account) error {
			assert.Equal(t, "Nia Putri", a.Name)
			return nil
		})
		d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
		d.employees.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		salary := decimal.RequireFromString("4500.555")
		resp, err := d.service.ProvisionEmployee(ctx, auth.ProvisionEmployeeRequest{
			Email: "new@example.com", Password: "secret123",
			FirstName: "Nia", LastName: "Putri",
			Salary: &salary, JoinDate: "2024-02-01",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Employee)
		assert.True(t, decimal.RequireFromString("4500.56").Equal(resp.Employee.Salary))
		assert.Equal(t, "2024-02-01", resp.Employee.JoinDate)
		assert.Equal(t, "employee", resp.Account.Role)
	})

	t.Run("negative salary", func(t *testing.T) {
		d := setupAuthServiceTest(t)
		salary := decimal.NewFromInt(-1)

		_, err := d.service.ProvisionEmployee(ctx, auth.ProvisionEmployeeRequest{
			Email: "new@example.com", Password: "secret123", FirstName: "N", LastName: "P", Salary: &salary,
		})

		assert.Error(t, err)
	})
}

func TestService_ProvisionHR(t *testing.T) {
	ctx := context.Background()
	d := setupAuthServiceTest(t)
	d.accounts.EXPECT().ExistsByEmail(ctx, "hr@example.com").Return(false, nil)
	d.sqlMock.ExpectBegin()
	d.accounts.EXPECT().WithTx(gomock.Any()).Return(d.accounts)
	d.accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.hrs.EXPECT().WithTx(gomock.Any()).Return(d.hrs)
	d.hrs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.sqlMock.ExpectCommit()

	resp, err := d.service.ProvisionHR(ctx, auth.ProvisionHRRequest{
		Name: "Hana", Email: "hr@example.com", Password: "secret123", Position: "Recruiter",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.HR)
	assert.Equal(t, "Recruiter", resp.HR.Position)
	assert.Equal(t, "hr", resp.Account.Role)
}
