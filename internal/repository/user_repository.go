package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// MySQL error numbers the store reacts to.
const (
	mysqlDuplicateEntry = 1062
	mysqlNoReferenced   = 1452
)

// UserRepo is the MySQL user store.  Favorites live in user_favorites with a
// (user_id, restaurant_id) primary key, so the database enforces set
// semantics.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,first_name,password_hash,address,created_at"

// InsertUser stores a new account.  A duplicate email yields ErrEmailExists.
func (r *UserRepo) InsertUser(ctx context.Context, u model.User) error {
	var addr sql.NullString
	if u.Address != nil {
		addr = sql.NullString{String: *u.Address, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?,?,?,?,?,?)",
		u.ID, NormalizeEmail(u.Email), u.FirstName, u.PasswordHash, addr, u.CreatedAt.UTC())
	if err != nil {
		if mysqlErrNumber(err) == mysqlDuplicateEntry {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByEmail fetches a user and its favorites by normalized email.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, "email", NormalizeEmail(email))
}

// FindUserByID fetches a user and its favorites by id.
func (r *UserRepo) FindUserByID(ctx context.Context, id string) (model.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *UserRepo) findOne(ctx context.Context, column, value string) (model.User, error) {
	var (
		u    model.User
		addr sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+"=? LIMIT 1", value).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.PasswordHash, &addr, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("select user: %w", err)
	}
	if addr.Valid {
		u.Address = &addr.String
	}
	if u.Favorites, err = r.favorites(ctx, u.ID); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserRepo) favorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT restaurant_id FROM user_favorites WHERE user_id=? ORDER BY created_at, restaurant_id", userID)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// AddFavorite inserts the pair unless it already exists.  A duplicate
// affects zero rows; an unknown user fails the foreign key.
func (r *UserRepo) AddFavorite(ctx context.Context, userID, restaurantID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_favorites (user_id, restaurant_id, created_at) VALUES (?,?,?) "+
			"ON DUPLICATE KEY UPDATE user_id=user_id",
		userID, restaurantID, time.Now().UTC())
	if err != nil {
		if mysqlErrNumber(err) == mysqlNoReferenced {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveFavorite deletes the pair if present.
func (r *UserRepo) RemoveFavorite(ctx context.Context, userID, restaurantID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_favorites WHERE user_id=? AND restaurant_id=?", userID, restaurantID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
