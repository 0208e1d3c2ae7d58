package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	s := NewStore(nil)
	n := 0
	s.newID = func() string {
		n++
		return "u" + string(rune('0'+n))
	}
	return s
}

func TestDefaults(t *testing.T) {
	s := newTestStore()
	state := s.State()

	assert.Equal(t, TabPersonalization, state.Tab)
	assert.Equal(t, AccentBlue, state.Accent)
	assert.Equal(t, Wallpapers[0], state.Wallpaper)
	assert.Len(t, state.Wallpapers, 6)
	assert.Equal(t, DefaultUser(), state.CurrentUser)
	assert.Equal(t, []User{DefaultUser()}, state.Users)
}

func TestSetTab(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetTab("accounts"))
	assert.Equal(t, TabAccounts, s.Tab())

	assert.ErrorIs(t, s.SetTab("Bluetooth"), ErrInvalidTab)
	assert.Equal(t, TabAccounts, s.Tab())
}

func TestSetAccent(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetAccent(AccentRose))
	assert.Equal(t, AccentRose, s.Accent())
	assert.ErrorIs(t, s.SetAccent("teal"), ErrInvalidAccent)
}

func TestSetWallpaper(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetWallpaper(Wallpapers[3]))
	assert.Equal(t, Wallpapers[3], s.Wallpaper())

	require.NoError(t, s.SetWallpaper("https://example.com/bg.png"))
	assert.ErrorIs(t, s.SetWallpaper("javascript:alert(1)"), ErrInvalidInput)
	assert.ErrorIs(t, s.SetWallpaper(""), ErrInvalidInput)
	assert.Equal(t, "https://example.com/bg.png", s.Wallpaper())
}

func TestAddUser(t *testing.T) {
	s := newTestStore()

	u, err := s.AddUser(UserInput{Name: "Ada Lovelace", Email: "ada@chimera.os"})
	require.NoError(t, err)
	assert.Equal(t, User{
		ID:          "u1",
		Name:        "Ada Lovelace",
		Email:       "ada@chimera.os",
		AvatarColor: "bg-indigo-600",
		Initials:    "AL",
		IsAdmin:     false,
	}, u)
	assert.Len(t, s.Users(), 2)
}

func TestAddUserValidation(t *testing.T) {
	tests := []struct {
		name string
		in   UserInput
	}{
		{name: "missing name", in: UserInput{Email: "a@b.co"}},
		{name: "bad email", in: UserInput{Name: "Ada", Email: "not-an-email"}},
		{name: "bad avatar", in: UserInput{Name: "Ada", AvatarColor: "bg-pink-999"}},
		{name: "long initials", in: UserInput{Name: "Ada", Initials: "ABCD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			_, err := s.AddUser(tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Len(t, s.Users(), 1)
		})
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	s := newTestStore()

	u, err := s.UpdateUser("1", UserInput{Name: "Jane Doe", Email: "jane@chimera.os", AvatarColor: "bg-rose-600"})
	require.NoError(t, err)
	assert.Equal(t, "JD", u.Initials)
	assert.True(t, u.IsAdmin)

	current := s.CurrentUser()
	assert.Equal(t, "Jane Doe", current.Name)
	assert.Equal(t, "bg-rose-600", current.AvatarColor)

	_, err = s.UpdateUser("ghost", UserInput{Name: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore()
	u, err := s.AddUser(UserInput{Name: "Guest"})
	require.NoError(t, err)

	deleted, err := s.DeleteUser("1")
	require.NoError(t, err)
	assert.False(t, deleted, "deleting the signed-in user is refused")
	assert.Len(t, s.Users(), 2)

	deleted, err = s.DeleteUser(u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, s.Users(), 1)

	_, err = s.DeleteUser(u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSwitchUser(t *testing.T) {
	s := newTestStore()
	guest, err := s.AddUser(UserInput{Name: "Guest User"})
	require.NoError(t, err)

	switched, err := s.SwitchUser(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, guest, switched)
	assert.Equal(t, guest, s.CurrentUser())

	deleted, err := s.DeleteUser("1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.SwitchUser("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", Initials("john doe"))
	assert.Equal(t, "A", Initials("Ada"))
	assert.Equal(t, "AB", Initials("a b c"))
	assert.Equal(t, "", Initials("   "))
	assert.Equal(t, "ÉZ", Initials("émile zola"))
}
