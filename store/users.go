package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sci-platform/riskform/model"
)

const userColumns = `
	usu_id, usu_name, usu_lastname, usu_slastname, usu_email,
	usu_state, usu_torespond, usertype_usut_id, department_dep_id`

// UsersByType lists the users holding the given role. No match is an empty
// result, not an error.
func (s *Store) UsersByType(ctx context.Context, userTypeID int) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM user
		WHERE usertype_usut_id = ?`,
		userTypeID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query users by type")
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u := model.User{}
		err = rows.Scan(
			&u.ID, &u.Name, &u.Lastname, &u.SecondLastname, &u.Email,
			&u.State, &u.ToRespond, &u.UserTypeID, &u.DepartmentID,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, u)
	}
	return users, errors.Wrap(rows.Err(), "iterate users")
}

// SetUserState flips a user's activation flag. States outside {A, I} are
// rejected up front.
func (s *Store) SetUserState(ctx context.Context, userID int, state model.UserState) (model.User, error) {
	if !state.Valid() {
		return model.User{}, ErrInvalidState
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user SET usu_state = ? WHERE usu_id = ?`,
		string(state), userID,
	)
	if err != nil {
		return model.User{}, errors.Wrap(err, "update user state")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.User{}, errors.Wrap(err, "update user state verify")
	}
	if n < 1 {
		return model.User{}, ErrNotFound
	}

	return s.UserByID(ctx, userID)
}

func (s *Store) UserByID(ctx context.Context, userID int) (model.User, error) {
	u := model.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM user
		WHERE usu_id = ?`,
		userID,
	).Scan(
		&u.ID, &u.Name, &u.Lastname, &u.SecondLastname, &u.Email,
		&u.State, &u.ToRespond, &u.UserTypeID, &u.DepartmentID,
	)
	if isNoRows(err) {
		return model.User{}, ErrNotFound
	}
	return u, errors.Wrap(err, "query user by id")
}

// CreateUser registers a new user account.
func (s *Store) CreateUser(ctx context.Context, u model.User, passwordHash string) (model.User, error) {
	if u.State == "" {
		u.State = model.UserActive
	}
	if !u.State.Valid() {
		return model.User{}, ErrInvalidState
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user (
			usu_name, usu_lastname, usu_slastname, usu_email,
			usu_password_hash, usu_state, usu_torespond,
			usertype_usut_id, department_dep_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING usu_id`,
		u.Name, u.Lastname, u.SecondLastname, u.Email,
		passwordHash, string(u.State), u.ToRespond,
		u.UserTypeID, u.DepartmentID,
	).Scan(&u.ID)
	if err != nil {
		return model.User{}, errors.Wrap(err, "insert user")
	}
	return u, nil
}

// Credentials returns a user record together with its password hash, for the
// login flow.
func (s *Store) Credentials(ctx context.Context, email string) (model.User, string, error) {
	u := model.User{}
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, usu_password_hash
		FROM user
		WHERE usu_email = ?`,
		email,
	).Scan(
		&u.ID, &u.Name, &u.Lastname, &u.SecondLastname, &u.Email,
		&u.State, &u.ToRespond, &u.UserTypeID, &u.DepartmentID,
		&hash,
	)
	if isNoRows(err) {
		return model.User{}, "", ErrNotFound
	}
	return u, hash, errors.Wrap(err, "query credentials")
}
