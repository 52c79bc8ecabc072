package services

import (
	"strings"

	"ourbus/internal/domain/models"
	"ourbus/internal/repositories"
)

const CouponFirstBus = "FIRSTBUS"

// Coupon outcome reasons. Both are informational, never errors: a bad coupon
// simply prices the booking without a discount.
const (
	CouponReasonInvalid         = "InvalidCoupon"
	CouponReasonNotFirstBooking = "NotFirstBooking"
)

// Quote is the priced breakdown for a seat selection.
type Quote struct {
	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	Total         int64  `json:"total"`
	CouponApplied bool   `json:"couponApplied"`
	CouponReason  string `json:"couponReason,omitempty"`
}

// PricingService evaluates coupons against the caller's booking history.
type PricingService struct {
	Ledger repositories.LedgerRepository
}

// Quote prices seatCount seats and applies the coupon when eligible.
// FIRSTBUS (case-insensitive) halves the subtotal, but only while the mobile
// number has no active booking yet. Total never goes negative.
func (s PricingService) Quote(seatCount int, coupon, mobile string) (Quote, error) {
	if seatCount < 0 {
		seatCount = 0
	}
	q := Quote{Subtotal: int64(seatCount) * models.TicketPrice}

	code := strings.ToUpper(strings.TrimSpace(coupon))
	switch code {
	case "":
		// no coupon, plain fare
	case CouponFirstBus:
		active, err := s.hasActiveBooking(mobile)
		if err != nil {
			return Quote{}, err
		}
		if active {
			q.CouponReason = CouponReasonNotFirstBooking
		} else {
			q.Discount = q.Subtotal / 2
			q.CouponApplied = true
		}
	default:
		q.CouponReason = CouponReasonInvalid
	}

	q.Total = q.Subtotal - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}
	return q, nil
}

func (s PricingService) hasActiveBooking(mobile string) (bool, error) {
	history, err := s.Ledger.FindByPhone(mobile)
	if err != nil {
		return false, err
	}
	for _, b := range history {
		if b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}
