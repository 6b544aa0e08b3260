package arp

import "errors"

var (
	ErrInvalidCatalog          = errors.New("arp: invalid catalog")
	ErrInvalidToneDistribution = errors.New("arp: tone distribution choice out of range")
	ErrBalanceOutOfRange       = errors.New("arp: seed balance outside [0, 1]")
	ErrInvalidKey              = errors.New("arp: key must be a pitch class 0-11")
	ErrInvalidMode             = errors.New("arp: unknown mode")
	ErrInvalidPosition         = errors.New("arp: position outside pattern")
	ErrInvalidMetre            = errors.New("arp: metre values must be positive")
	ErrInvalidRange            = errors.New("arp: invalid note range")
)
