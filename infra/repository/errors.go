package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"github.com/demobank/ledger/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM and driver errors to domain errors.
// Connection failures map to domain.ErrUnavailable and keep the original error in the
// chain; context errors pass through unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &netErr):
		return errors.Join(domain.ErrUnavailable, err)
	}
	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
