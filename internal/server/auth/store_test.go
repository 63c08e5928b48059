package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

func TestAuthenticate_DemoAdmin(t *testing.T) {
	sut := NewStore()

	user, err := sut.Authenticate("admin", "admin123")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "admin", user.Username)
}

func TestAuthenticate_DemoClient(t *testing.T) {
	sut := NewStore()

	user, err := sut.Authenticate("client", "client123")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	sut := NewStore()

	_, err := sut.Authenticate("admin", "nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	sut := NewStore()

	_, err := sut.Authenticate("ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_NewAccountGetsClientRole(t *testing.T) {
	sut := NewStore()

	user, err := sut.Register(domain.Registration{
		Username: "newbie",
		Password: "secret1",
		Name:     "New Person",
		Email:    "new@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, int64(3), user.ID)

	// And the account is usable right away.
	again, err := sut.Authenticate("newbie", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	sut := NewStore()

	_, err := sut.Register(domain.Registration{Username: "admin", Password: "secret1"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_ShortUsername(t *testing.T) {
	sut := NewStore()

	_, err := sut.Register(domain.Registration{Username: "ab", Password: "secret1"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)
}

func TestRegister_ShortPassword(t *testing.T) {
	sut := NewStore()

	_, err := sut.Register(domain.Registration{Username: "newbie", Password: "12345"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
}

func TestRegister_BadEmail(t *testing.T) {
	sut := NewStore()

	_, err := sut.Register(domain.Registration{Username: "newbie", Password: "secret1", Email: "not-an-email"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}
