package service

import (
	"errors"
	"testing"

	"github.com/relief-next/internal/constants"
)

func TestValidateTransitionAllowed(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{constants.ReservationStatusPending, constants.ReservationStatusConfirmed},
		{constants.ReservationStatusPending, constants.ReservationStatusCancelled},
		{constants.ReservationStatusConfirmed, constants.ReservationStatusPickedUp},
		{constants.ReservationStatusConfirmed, constants.ReservationStatusCancelled},
		{constants.ReservationStatusPickedUp, constants.ReservationStatusDelivered},
	}
	for _, c := range cases {
		if err := validateTransition(c.from, c.to); err != nil {
			t.Errorf("transition %s -> %s: want allowed, got %v", c.from, c.to, err)
		}
	}
}

func TestValidateTransitionRejected(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{constants.ReservationStatusPending, constants.ReservationStatusPickedUp},
		{constants.ReservationStatusPending, constants.ReservationStatusDelivered},
		{constants.ReservationStatusConfirmed, constants.ReservationStatusDelivered},
		{constants.ReservationStatusConfirmed, constants.ReservationStatusPending},
		{constants.ReservationStatusPickedUp, constants.ReservationStatusCancelled},
		{constants.ReservationStatusPickedUp, constants.ReservationStatusConfirmed},
	}
	for _, c := range cases {
		err := validateTransition(c.from, c.to)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("transition %s -> %s: want ErrIllegalTransition, got %v", c.from, c.to, err)
		}
	}
}

func TestValidateTransitionTerminal(t *testing.T) {
	for _, from := range []string{
		constants.ReservationStatusDelivered,
		constants.ReservationStatusCancelled,
	} {
		for _, to := range []string{
			constants.ReservationStatusPending,
			constants.ReservationStatusConfirmed,
			constants.ReservationStatusCancelled,
		} {
			err := validateTransition(from, to)
			if !errors.Is(err, ErrReservationTerminal) {
				t.Errorf("transition %s -> %s: want ErrReservationTerminal, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	err := validateTransition(constants.ReservationStatusPending, "shipped")
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("want ErrIllegalTransition for unknown status, got %v", err)
	}
}
