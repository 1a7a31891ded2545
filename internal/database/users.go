package database

import "context"

const createUser = `
INSERT INTO Users (login, password, phoneNum, favItems, type)
VALUES ($1, $2, $3, $4, $5)
`

// CreateUserParams carries the columns of a new Users row.
type CreateUserParams struct {
	Login    string
	Password string
	PhoneNum string
	FavItems string
	Type     string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUser, arg.Login, arg.Password, arg.PhoneNum, arg.FavItems, arg.Type)
	return err
}

const getUserByLogin = `
SELECT login, password, phoneNum, favItems, type
FROM Users
WHERE login = $1
`

func (q *Queries) GetUserByLogin(ctx context.Context, login string) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, getUserByLogin, login).
		Scan(&u.Login, &u.Password, &u.PhoneNum, &u.FavItems, &u.Type)
	return u, err
}

const updateUserPassword = `
UPDATE Users SET password = $2 WHERE login = $1
`

func (q *Queries) UpdateUserPassword(ctx context.Context, login, password string) error {
	_, err := q.db.Exec(ctx, updateUserPassword, login, password)
	return err
}

const updateUserPhone = `
UPDATE Users SET phoneNum = $2 WHERE login = $1
`

func (q *Queries) UpdateUserPhone(ctx context.Context, login, phone string) error {
	_, err := q.db.Exec(ctx, updateUserPhone, login, phone)
	return err
}

const appendUserFavItem = `
UPDATE Users SET favItems = favItems || ' / ' || $2 WHERE login = $1
`

// AppendUserFavItem appends an item to the free-text favorite list with the
// " / " separator the original data uses.
func (q *Queries) AppendUserFavItem(ctx context.Context, login, item string) error {
	_, err := q.db.Exec(ctx, appendUserFavItem, login, item)
	return err
}

const updateUserType = `
UPDATE Users SET type = $2 WHERE login = $1
`

// UpdateUserType rewrites the role column. Returns the number of rows touched
// so callers can distinguish a missing login from a successful change.
func (q *Queries) UpdateUserType(ctx context.Context, login, userType string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateUserType, login, userType)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
