package domain

import (
	"fmt"
	"strings"
)

// Kind names one of the three independent record categories.
type Kind string

const (
	KindBus    Kind = "bus"
	KindDriver Kind = "driver"
	KindTrip   Kind = "trip"
)

// Title is the capitalized form used in page messages ("Bus not found").
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindBus:
		return KindBus, nil
	case KindDriver:
		return KindDriver, nil
	case KindTrip:
		return KindTrip, nil
	}
	return "", fmt.Errorf("unknown record kind %q", raw)
}

// MatchMode selects how the trip lookup combines its two route fields.
type MatchMode string

const (
	// MatchLegacy filters on the destination only; the origin is accepted
	// and ignored. Existing clients depend on this superset behavior.
	MatchLegacy MatchMode = "legacy"
	// MatchStrict requires destination and origin to both match.
	MatchStrict MatchMode = "strict"
)

func ParseMatchMode(raw string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MatchLegacy:
		return MatchLegacy, nil
	case MatchStrict:
		return MatchStrict, nil
	}
	return "", fmt.Errorf("unknown trip match mode %q", raw)
}
