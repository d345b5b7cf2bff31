package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidVideoURL   = errors.New("not a valid YouTube video URL")
	ErrSignatureMismatch = errors.New("payment signature verification failed")
	ErrOrderNotPaid      = errors.New("order has no captured payment to refund")
	ErrNoRefund          = errors.New("order has no refund")
)
