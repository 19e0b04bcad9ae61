package domain

import "time"

// PaymentMethod identifies where an approved payout is sent.
type PaymentMethod string

const (
	PaymentMethodNone     PaymentMethod = ""
	PaymentMethodCBE      PaymentMethod = "cbe"
	PaymentMethodTeleBirr PaymentMethod = "telebirr"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCBE || m == PaymentMethodTeleBirr
}

type User struct {
	ID             int64
	TelegramID     int64
	PhoneNumber    string
	Points         int64
	IsRegistered   bool
	PaymentMethod  PaymentMethod
	PaymentDetail  string
	ReferralPoints int64
	CreatedAt      time.Time
}

// HasPaymentDetails reports whether the user can receive a payout.
func (u *User) HasPaymentDetails() bool {
	return u.PaymentMethod.Valid() && u.PaymentDetail != ""
}
