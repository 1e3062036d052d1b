package flow

import (
	"strings"

	"github.com/sci-platform/riskform/model"
)

const usersPerPage = 20

// UserTable is the TI panel state: the user list with name/email filtering,
// twenty-per-page slicing and the deactivation confirmation step.
// Deactivating removes a respondent's ability to answer, so it must be
// confirmed; activating is immediate.
type UserTable struct {
	users   []model.User
	filter  string
	page    int
	pending *model.User
}

func NewUserTable(users []model.User) *UserTable {
	return &UserTable{users: users}
}

func (t *UserTable) SetFilter(filter string) {
	t.filter = filter
}

// Filtered returns the users whose name or email contains the filter,
// case-insensitive.
func (t *UserTable) Filtered() []model.User {
	needle := strings.ToLower(t.filter)
	filtered := []model.User{}
	for _, u := range t.users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func (t *UserTable) TotalPages() int {
	return (len(t.Filtered()) + usersPerPage - 1) / usersPerPage
}

func (t *UserTable) Page() int {
	return t.page
}

// GoToPage navigates to a page of the filtered list. Targets outside
// [0, TotalPages()) are ignored: the page does not move.
func (t *UserTable) GoToPage(target int) bool {
	if target < 0 || target >= t.TotalPages() {
		return false
	}
	t.page = target
	return true
}

// PageUsers slices the filtered list down to the current page.
func (t *UserTable) PageUsers() []model.User {
	filtered := t.Filtered()
	from := t.page * usersPerPage
	if from >= len(filtered) {
		return []model.User{}
	}
	to := from + usersPerPage
	if to > len(filtered) {
		to = len(filtered)
	}
	return filtered[from:to]
}

// Toggle requests a state change for a user. Activation is applied at once;
// deactivation is held back until ConfirmDeactivation.
func (t *UserTable) Toggle(user model.User, active bool) (model.UserState, bool) {
	if active {
		return model.UserActive, true
	}
	pending := user
	t.pending = &pending
	return model.UserInactive, false
}

// PendingDeactivation returns the user awaiting confirmation, if any.
func (t *UserTable) PendingDeactivation() *model.User {
	return t.pending
}

// ConfirmDeactivation commits the held-back deactivation.
func (t *UserTable) ConfirmDeactivation() (model.User, bool) {
	if t.pending == nil {
		return model.User{}, false
	}
	user := *t.pending
	t.pending = nil
	return user, true
}

func (t *UserTable) CancelDeactivation() {
	t.pending = nil
}
