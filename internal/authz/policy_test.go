package authz

import (
	"testing"

	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
)

func TestActionPolicy(t *testing.T) {
	cases := []struct {
		role   string
		action string
		want   bool
	}{
		{constants.RoleAdmin, constants.ActionStationCreate, true},
		{constants.RoleManager, constants.ActionStationCreate, true},
		{constants.RoleVolunteer, constants.ActionStationCreate, false},
		{constants.RoleVictim, constants.ActionStationCreate, false},
		{constants.RoleManager, constants.ActionInventoryManage, true},
		{constants.RoleVolunteer, constants.ActionInventoryManage, false},
		{constants.RoleVolunteer, constants.ActionReservationCreate, true},
		{constants.RoleVictim, constants.ActionReservationCreate, true},
		{constants.RoleVictim, constants.ActionReservationView, true},
		{"", constants.ActionReservationCreate, false},
		{constants.RoleAdmin, "unknown:action", false},
	}
	for _, c := range cases {
		if got := Allowed(c.role, c.action); got != c.want {
			t.Errorf("Allowed(%q, %q): want %v, got %v", c.role, c.action, c.want, got)
		}
	}
}

func TestStationOwnership(t *testing.T) {
	station := &models.SupplyStation{ManagerID: 7}

	if !CanManageStation(7, constants.RoleManager, station) {
		t.Error("owner manager should manage own station")
	}
	if CanManageStation(8, constants.RoleManager, station) {
		t.Error("other manager should not manage foreign station")
	}
	if !CanManageStation(1, constants.RoleAdmin, station) {
		t.Error("admin should manage any station")
	}
	if OwnsStation(0, station) {
		t.Error("anonymous actor should not own a station")
	}
	if OwnsStation(7, nil) {
		t.Error("nil station should not be owned")
	}
}

func TestReservationPredicates(t *testing.T) {
	station := &models.SupplyStation{ManagerID: 7}
	reservation := &models.SupplyReservation{RequesterID: 3, StationID: 1}

	if !CanEditReservation(3, constants.RoleVolunteer, reservation) {
		t.Error("requester should edit own reservation")
	}
	if CanEditReservation(7, constants.RoleManager, reservation) {
		t.Error("station manager should not edit someone else's reservation")
	}
	if !CanConfirmReservation(7, constants.RoleManager, station) {
		t.Error("station manager should confirm station reservations")
	}
	if CanConfirmReservation(3, constants.RoleVolunteer, station) {
		t.Error("requester should not confirm")
	}
	if !CanTransitionReservation(7, constants.RoleManager, reservation, station) {
		t.Error("station manager should transition station reservations")
	}
	if CanViewReservation(9, constants.RoleVolunteer, reservation, station) {
		t.Error("stranger should not view reservation")
	}
	if !CanViewReservation(1, constants.RoleAdmin, reservation, station) {
		t.Error("admin should view any reservation")
	}
}
