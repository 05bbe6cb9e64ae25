package marked

import (
	str "strings"
	"time"
)

// Account is a marked struct.
//
//buildergen:builder
type Account struct {
	ID       int64
	Owner    string
	Opened   time.Time
	_        struct{}
	version  int  `builder:"-"`
	readOnly bool `builder:"final"`
	notes    *str.Builder
}

// NewAccount returns a new Account.
func NewAccount(id int64, owner string, opened time.Time, notes *str.Builder) *Account {
	return &Account{ID: id, Owner: owner, Opened: opened, notes: notes}
}

// Age returns how long the account has been open.
func (a *Account) Age(now time.Time) time.Duration { return now.Sub(a.Opened) }

//buildergen:builder
func (a *Account) Close() {}

//buildergen:builder
func Greet() string { return "hello" }

//buildergen:builder
var Default = Account{}

//buildergen:builder
type Store interface {
	Get(id int64) (*Account, error)
}

//buildergen:builder
type Celsius float64

//buildergen:builder
type Box[T any] struct {
	v T
}

// Profile is not marked, one of its fields is.
type Profile struct {
	//buildergen:builder
	Nick string
}
