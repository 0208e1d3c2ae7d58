// Package settings holds desktop preferences and user accounts: the
// selected settings tab, accent color, wallpaper, the account list and the
// signed-in user.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

var (
	ErrInvalidTab    = errors.New("unknown settings tab")
	ErrInvalidAccent = errors.New("unknown accent color")
	ErrInvalidInput  = errors.New("invalid settings input")
	ErrUserNotFound  = errors.New("user not found")
)

// Tab is a page of the settings window.
type Tab string

const (
	TabAccounts        Tab = "Accounts"
	TabPersonalization Tab = "Personalization"
	TabNetwork         Tab = "Network"
	TabNotifications   Tab = "Notifications"
	TabPrivacy         Tab = "Privacy"
	TabSystem          Tab = "System"
)

// Tabs lists every tab in sidebar order.
var Tabs = []Tab{TabAccounts, TabPersonalization, TabNetwork, TabNotifications, TabPrivacy, TabSystem}

// Accent is the highlight color of the shell.
type Accent string

const (
	AccentBlue    Accent = "blue"
	AccentPurple  Accent = "purple"
	AccentRose    Accent = "rose"
	AccentEmerald Accent = "emerald"
	AccentAmber   Accent = "amber"
)

var Accents = []Accent{AccentBlue, AccentPurple, AccentRose, AccentEmerald, AccentAmber}

const wallpaperParams = "?auto=format&fit=crop&q=80&w=2070"

// Wallpapers are the built-in backgrounds. The first is the default.
var Wallpapers = []string{
	"https://images.unsplash.com/photo-1477346611705-65d1883cee1e" + wallpaperParams,
	"https://images.unsplash.com/photo-1493246507139-91e8bef99c02" + wallpaperParams,
	"https://images.unsplash.com/photo-1464822759023-fed622ff2c3b" + wallpaperParams,
	"https://images.unsplash.com/photo-1502082553048-f009c37129b9" + wallpaperParams,
	"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe" + wallpaperParams,
	"https://images.unsplash.com/photo-1550684848-fac1c5b4e853" + wallpaperParams,
}

// AvatarColors are the selectable avatar backgrounds.
var AvatarColors = []string{
	"bg-blue-600", "bg-purple-600", "bg-rose-600", "bg-emerald-600", "bg-amber-600", "bg-slate-700", "bg-indigo-600",
}

const newUserAvatar = "bg-indigo-600"

// User is a local account.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatar_color"`
	Initials    string `json:"initials"`
	IsAdmin     bool   `json:"is_admin"`
}

// UserInput carries editable account fields. Empty Initials are derived
// from Name; an empty AvatarColor keeps the current one.
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatar_color"`
	Initials    string `json:"initials"`
}

// State is the full settings view.
type State struct {
	Tab          Tab      `json:"tab"`
	Tabs         []Tab    `json:"tabs"`
	Accent       Accent   `json:"accent"`
	Accents      []Accent `json:"accents"`
	Wallpaper    string   `json:"wallpaper"`
	Wallpapers   []string `json:"wallpapers"`
	AvatarColors []string `json:"avatar_colors"`
	Users        []User   `json:"users"`
	CurrentUser  User     `json:"current_user"`
}

// DefaultUser is the account the desktop boots into.
func DefaultUser() User {
	return User{
		ID:          "1",
		Name:        "John Doe",
		Email:       "john@chimera.os",
		AvatarColor: "bg-blue-600",
		Initials:    "JD",
		IsAdmin:     true,
	}
}

// Store is the settings state shared by every settings window.
type Store struct {
	mu        sync.RWMutex
	tab       Tab
	accent    Accent
	wallpaper string
	users     []User
	current   string

	logger *logging.Logger
	newID  func() string
}

// NewStore creates a store with the default preferences and account.
func NewStore(logger *logging.Logger) *Store {
	def := DefaultUser()
	return &Store{
		tab:       TabPersonalization,
		accent:    AccentBlue,
		wallpaper: Wallpapers[0],
		users:     []User{def},
		current:   def.ID,
		logger:    logging.OrNop(logger).Named("settings"),
		newID:     uuid.NewString,
	}
}

// ParseTab accepts a tab name in any case.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
}

func (s *Store) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SetTab selects a page.
func (s *Store) SetTab(tab Tab) error {
	t, err := ParseTab(string(tab))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
	return nil
}

func (s *Store) Accent() Accent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accent
}

// SetAccent changes the accent color.
func (s *Store) SetAccent(accent Accent) error {
	for _, a := range Accents {
		if a == accent {
			s.mu.Lock()
			s.accent = a
			s.mu.Unlock()
			s.logger.Info("Accent changed", zap.String("accent", string(a)))
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidAccent, accent)
}

func (s *Store) Wallpaper() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallpaper
}

// SetWallpaper accepts a built-in wallpaper or any absolute http(s) URL.
func (s *Store) SetWallpaper(url string) error {
	if err := utils.ValidateURL(url, "wallpaper"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.mu.Lock()
	s.wallpaper = url
	s.mu.Unlock()
	return nil
}

// Users returns every account in creation order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

// CurrentUser returns the signed-in account.
func (s *Store) CurrentUser() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, _ := s.find(s.current)
	return u
}

// AddUser creates a non-admin account.
func (s *Store) AddUser(in UserInput) (User, error) {
	if in.AvatarColor == "" {
		in.AvatarColor = newUserAvatar
	}
	u, err := apply(User{ID: s.newID()}, in)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()

	s.logger.Info("User added", zap.String("user_id", u.ID), zap.String("name", u.Name))
	return u, nil
}

// UpdateUser edits an account. Edits to the signed-in account are visible
// through CurrentUser immediately.
func (s *Store) UpdateUser(id string, in UserInput) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u, err := apply(s.users[i], in)
		if err != nil {
			return User{}, err
		}
		s.users[i] = u
		return u, nil
	}
	return User{}, fmt.Errorf("update %s: %w", id, ErrUserNotFound)
}

// DeleteUser removes an account. Deleting the signed-in account is refused
// and reports false without an error.
func (s *Store) DeleteUser(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == s.current {
		return false, nil
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.logger.Info("User deleted", zap.String("user_id", id))
			return true, nil
		}
	}
	return false, fmt.Errorf("delete %s: %w", id, ErrUserNotFound)
}

// SwitchUser signs in as another account.
func (s *Store) SwitchUser(id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.find(id)
	if !ok {
		return User{}, fmt.Errorf("switch %s: %w", id, ErrUserNotFound)
	}
	s.current = id
	return u, nil
}

// State returns the full view state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, _ := s.find(s.current)
	return State{
		Tab:          s.tab,
		Tabs:         Tabs,
		Accent:       s.accent,
		Accents:      Accents,
		Wallpaper:    s.wallpaper,
		Wallpapers:   Wallpapers,
		AvatarColors: AvatarColors,
		Users:        append([]User(nil), s.users...),
		CurrentUser:  current,
	}
}

// find must be called with mu held.
func (s *Store) find(id string) (User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func apply(u User, in UserInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	if err := utils.ValidateName(name, "name"); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidateEmail(in.Email, false); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.AvatarColor != "" && !validAvatar(in.AvatarColor) {
		return User{}, fmt.Errorf("%w: unknown avatar color %q", ErrInvalidInput, in.AvatarColor)
	}

	initials := strings.ToUpper(strings.TrimSpace(in.Initials))
	if initials == "" {
		initials = Initials(name)
	}
	if err := utils.ValidateString(initials, "initials", 0, utils.MaxInitialsLength, false); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u.Name = name
	u.Email = in.Email
	u.Initials = initials
	if in.AvatarColor != "" {
		u.AvatarColor = in.AvatarColor
	}
	return u, nil
}

func validAvatar(color string) bool {
	for _, c := range AvatarColors {
		if c == color {
			return true
		}
	}
	return false
}

// Initials takes the first letter of up to two words of name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
