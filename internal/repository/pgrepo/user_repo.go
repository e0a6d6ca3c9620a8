package pgrepo

import (
	"context"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

const userColumns = "id, created_at, updated_at, username, password"

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING "+userColumns,
		args.Username, args.Password,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user `%s`", args.Username)
	}
	return user, nil
}

func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1",
		username,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username `%s`", username)
	}
	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.Password,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
