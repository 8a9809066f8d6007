package model

import "time"

// User is an account record as held by the user store.  The bson tags map
// the MongoDB document; the MySQL store scans columns into the same struct
// and keeps favorites in a separate table.
//
// Fields:
//
//	ID           – opaque UUID string, primary key.
//	Email        – unique login key, stored lower-cased.
//	FirstName    – display name.
//	PasswordHash – bcrypt hash; never serialized.
//	Address      – optional postal address.
//	Favorites    – restaurant ids, never duplicated.
//	CreatedAt    – UTC creation time.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Address      *string   `bson:"address,omitempty" json:"address"`
	Favorites    []string  `bson:"favorites" json:"favorites"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// HasFavorite reports whether restaurantID is in the user's favorites.
func (u User) HasFavorite(restaurantID string) bool {
	for _, id := range u.Favorites {
		if id == restaurantID {
			return true
		}
	}
	return false
}

// UserStats is the derived aggregate returned by GET /user/stats.
type UserStats struct {
	TotalSaved       float64 `json:"total_saved"`
	ComparisonsCount int     `json:"comparisons_count"`
	FavoritesCount   int     `json:"favorites_count"`
}
