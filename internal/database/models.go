package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// User is a row of Users. Password holds the bcrypt hash of the credential.
type User struct {
	Login    string
	Password string
	PhoneNum string
	FavItems string
	Type     string
}

// MenuItem is a row of Menu. ItemName is the effective key used by lookups.
type MenuItem struct {
	ItemName    string
	Type        string
	Price       pgtype.Numeric
	Description string
	ImageURL    string
}

// Order is a row of Orders. The received-timestamp column is misspelled
// "timeStampRecieved" in the pre-existing schema; only the SQL text carries
// the misspelling.
type Order struct {
	OrderID  int64
	Login    string
	Paid     bool
	Received time.Time
	Total    pgtype.Numeric
}

// ItemStatus is a row of ItemStatus: per-order, per-item fulfillment state.
// Identity is the (OrderID, ItemName) pair.
type ItemStatus struct {
	OrderID     int64
	ItemName    string
	Amount      int32
	LastUpdated time.Time
	Status      string
	Comments    string
}
