package account

import "errors"

// ErrorKind classifies transaction engine failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAccountNotFound
	KindInvalidAmount
	KindInsufficientBalance
	KindUnsupportedOperation
	KindStoreUnavailable
)

var kindNames = map[ErrorKind]string{
	KindUnknown:              "Unknown",
	KindAccountNotFound:      "AccountNotFound",
	KindInvalidAmount:        "InvalidAmount",
	KindInsufficientBalance:  "InsufficientBalance",
	KindUnsupportedOperation: "UnsupportedOperation",
	KindStoreUnavailable:     "StoreUnavailable",
}

func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[KindUnknown]
}

// KindOf returns the kind of err, or KindUnknown when err is nil or unclassified.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrAccountNotFound):
		return KindAccountNotFound
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrUnsupportedOperation):
		return KindUnsupportedOperation
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	}
	return KindUnknown
}

// IsRejection reports whether err is a business rejection. Rejections leave no trace
// and are never retried.
func IsRejection(err error) bool {
	switch KindOf(err) {
	case KindAccountNotFound, KindInvalidAmount, KindInsufficientBalance, KindUnsupportedOperation:
		return true
	}
	return false
}
