package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
)

func TestCreateReservationRequiresKnownAvailableSupply(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)
	addTestInventory(t, station.ID, "blanket", false)

	_, err := env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Items: []ReservationItemInput{
			{SupplyType: "water", Quantity: 5},
			{SupplyType: "blanket", Quantity: 2},
		},
	})
	if !errors.Is(err, ErrSupplyUnavailable) {
		t.Fatalf("want ErrSupplyUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "blanket") {
		t.Fatalf("error should name the unavailable type, got %q", err.Error())
	}

	// 整单校验失败时不允许出现部分落库
	var count int64
	models.DB.Model(&models.SupplyReservation{}).Count(&count)
	if count != 0 {
		t.Fatalf("want 0 reservations after failed create, got %d", count)
	}
	models.DB.Model(&models.ReservationItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("want 0 reservation items after failed create, got %d", count)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)

	_, err := env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Items:     []ReservationItemInput{{SupplyType: "water", Quantity: 0}},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity: want ErrInvalidQuantity, got %v", err)
	}

	_, err = env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Items:     []ReservationItemInput{},
	})
	if !errors.Is(err, ErrInvalidReservation) {
		t.Fatalf("empty items: want ErrInvalidReservation, got %v", err)
	}

	_, err = env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Items: []ReservationItemInput{
			{SupplyType: "water", Quantity: 1},
			{SupplyType: "water", Quantity: 2},
		},
	})
	if !errors.Is(err, ErrInvalidReservation) {
		t.Fatalf("duplicate type: want ErrInvalidReservation, got %v", err)
	}

	taskID := uint(99)
	_, err = env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		TaskID:    &taskID,
		Items:     []ReservationItemInput{{SupplyType: "water", Quantity: 1}},
	})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("missing task: want ErrTaskNotFound, got %v", err)
	}
}

func TestCreateReservationInactiveStationHidden(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "停用站")
	models.DB.Model(&models.SupplyStation{}).Where("id = ?", station.ID).Update("is_active", false)
	addTestInventory(t, station.ID, "water", true)

	_, err := env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Items:     []ReservationItemInput{{SupplyType: "water", Quantity: 1}},
	})
	if !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("want ErrStationNotFound for inactive station, got %v", err)
	}
}

func TestReservationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)
	addTestInventory(t, station.ID, "rice", true)

	view := mustCreateReservation(t, env, volunteer, station.ID, []ReservationItemInput{
		{SupplyType: "water", Quantity: 10},
		{SupplyType: "rice", Quantity: 3},
	})
	if view.Status != constants.ReservationStatusPending {
		t.Fatalf("want pending after create, got %s", view.Status)
	}
	if len(view.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(view.Items))
	}

	// 志愿者不能确认自己的预约
	_, err := env.Reservations.ConfirmReservation(volunteer.ID, volunteer.Role, view.ID, nil)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("requester confirm: want ErrNotAuthorized, got %v", err)
	}

	// 站点管理员确认，water 给 8，rice 未填报默认 0
	confirmed, err := env.Reservations.ConfirmReservation(manager.ID, manager.Role, view.ID, []ConfirmItemInput{
		{SupplyType: "water", ConfirmedQuantity: 8},
	})
	if err != nil {
		t.Fatalf("confirm reservation: %v", err)
	}
	if confirmed.Status != constants.ReservationStatusConfirmed {
		t.Fatalf("want confirmed, got %s", confirmed.Status)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatal("confirmed_at should be set after confirmation")
	}
	quantities := map[string]int{}
	for _, item := range confirmed.Items {
		if item.ConfirmedQuantity == nil {
			t.Fatalf("item %s: confirmed quantity should be recorded", item.SupplyType)
		}
		quantities[item.SupplyType] = *item.ConfirmedQuantity
	}
	if quantities["water"] != 8 {
		t.Fatalf("water confirmed: want 8, got %d", quantities["water"])
	}
	if quantities["rice"] != 0 {
		t.Fatalf("rice confirmed: want default 0, got %d", quantities["rice"])
	}

	// 重复确认被拒
	_, err = env.Reservations.ConfirmReservation(manager.ID, manager.Role, view.ID, nil)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("double confirm: want ErrIllegalTransition, got %v", err)
	}

	pickedUp, err := env.Reservations.UpdateReservationStatus(manager.ID, manager.Role, view.ID, constants.ReservationStatusPickedUp)
	if err != nil {
		t.Fatalf("pick up: %v", err)
	}
	if pickedUp.PickedUpAt == nil {
		t.Fatal("picked_up_at should be set")
	}

	delivered, err := env.Reservations.UpdateReservationStatus(manager.ID, manager.Role, view.ID, constants.ReservationStatusDelivered)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatal("delivered_at should be set")
	}

	// 终态后任何转移都失败
	_, err = env.Reservations.UpdateReservationStatus(manager.ID, manager.Role, view.ID, constants.ReservationStatusCancelled)
	if !errors.Is(err, ErrReservationTerminal) {
		t.Fatalf("transition after delivered: want ErrReservationTerminal, got %v", err)
	}
}

func TestUpdateReservationWhilePending(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)
	addTestInventory(t, station.ID, "rice", true)
	addTestInventory(t, station.ID, "blanket", false)

	view := mustCreateReservation(t, env, volunteer, station.ID, []ReservationItemInput{
		{SupplyType: "water", Quantity: 5},
	})

	notes := "updated plan"
	updated, err := env.Reservations.UpdateReservation(volunteer.ID, volunteer.Role, view.ID, UpdateReservationInput{
		Notes: &notes,
		Items: []ReservationItemInput{
			{SupplyType: "water", Quantity: 3},
			{SupplyType: "rice", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("update reservation: %v", err)
	}
	if updated.Notes != "updated plan" {
		t.Fatalf("notes: want %q, got %q", "updated plan", updated.Notes)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items after replace: want 2, got %d", len(updated.Items))
	}
	quantities := map[string]int{}
	for _, item := range updated.Items {
		quantities[item.SupplyType] = item.RequestedQuantity
	}
	if quantities["water"] != 3 || quantities["rice"] != 2 {
		t.Fatalf("replaced items: want water=3 rice=2, got %+v", quantities)
	}

	// 替换明细重走可用性校验
	_, err = env.Reservations.UpdateReservation(volunteer.ID, volunteer.Role, view.ID, UpdateReservationInput{
		Items: []ReservationItemInput{{SupplyType: "blanket", Quantity: 1}},
	})
	if !errors.Is(err, ErrSupplyUnavailable) {
		t.Fatalf("unavailable replacement: want ErrSupplyUnavailable, got %v", err)
	}

	// 站点管理员不是发起人，不能编辑
	_, err = env.Reservations.UpdateReservation(manager.ID, manager.Role, view.ID, UpdateReservationInput{Notes: &notes})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("manager edit: want ErrNotAuthorized, got %v", err)
	}

	// 确认后不再可编辑
	if _, err := env.Reservations.ConfirmReservation(manager.ID, manager.Role, view.ID, nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	_, err = env.Reservations.UpdateReservation(volunteer.ID, volunteer.Role, view.ID, UpdateReservationInput{Notes: &notes})
	if !errors.Is(err, ErrInvalidReservation) {
		t.Fatalf("edit after confirm: want ErrInvalidReservation, got %v", err)
	}

	// 终态编辑报冲突
	if _, err := env.Reservations.UpdateReservationStatus(manager.ID, manager.Role, view.ID, constants.ReservationStatusPickedUp); err != nil {
		t.Fatalf("pick up: %v", err)
	}
	if _, err := env.Reservations.UpdateReservationStatus(manager.ID, manager.Role, view.ID, constants.ReservationStatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	_, err = env.Reservations.UpdateReservation(volunteer.ID, volunteer.Role, view.ID, UpdateReservationInput{Notes: &notes})
	if !errors.Is(err, ErrReservationTerminal) {
		t.Fatalf("edit after delivered: want ErrReservationTerminal, got %v", err)
	}
}

func TestCancelReservationAppendsReason(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)

	view, err := env.Reservations.CreateReservation(volunteer.ID, volunteer.Role, CreateReservationInput{
		StationID: station.ID,
		Notes:     "urgent",
		Items:     []ReservationItemInput{{SupplyType: "water", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	cancelled, err := env.Reservations.CancelReservation(volunteer.ID, volunteer.Role, view.ID, "no longer needed")
	if err != nil {
		t.Fatalf("cancel reservation: %v", err)
	}
	if cancelled.Status != constants.ReservationStatusCancelled {
		t.Fatalf("want cancelled, got %s", cancelled.Status)
	}
	want := "urgent\ncancelled: no longer needed"
	if cancelled.Notes != want {
		t.Fatalf("notes: want %q, got %q", want, cancelled.Notes)
	}
}

func TestReservationVisibility(t *testing.T) {
	env := newTestEnv(t)
	admin := createTestUser(t, "admin", constants.RoleAdmin)
	manager := createTestUser(t, "manager", constants.RoleManager)
	otherManager := createTestUser(t, "other manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	stranger := createTestUser(t, "stranger", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)

	view := mustCreateReservation(t, env, volunteer, station.ID, []ReservationItemInput{
		{SupplyType: "water", Quantity: 1},
	})

	if _, err := env.Reservations.GetReservation(volunteer.ID, volunteer.Role, view.ID); err != nil {
		t.Fatalf("requester should see own reservation: %v", err)
	}
	if _, err := env.Reservations.GetReservation(manager.ID, manager.Role, view.ID); err != nil {
		t.Fatalf("station manager should see station reservation: %v", err)
	}
	if _, err := env.Reservations.GetReservation(admin.ID, admin.Role, view.ID); err != nil {
		t.Fatalf("admin should see any reservation: %v", err)
	}

	// 无关人员按不存在处理，不泄露预约存在性
	if _, err := env.Reservations.GetReservation(stranger.ID, stranger.Role, view.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("stranger: want ErrReservationNotFound, got %v", err)
	}
	if _, err := env.Reservations.GetReservation(otherManager.ID, otherManager.Role, view.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("unrelated manager: want ErrReservationNotFound, got %v", err)
	}
}

func TestReservationPermissionFlags(t *testing.T) {
	env := newTestEnv(t)
	admin := createTestUser(t, "admin", constants.RoleAdmin)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)

	view := mustCreateReservation(t, env, volunteer, station.ID, []ReservationItemInput{
		{SupplyType: "water", Quantity: 1},
	})

	requesterView, err := env.Reservations.GetReservation(volunteer.ID, volunteer.Role, view.ID)
	if err != nil {
		t.Fatalf("requester get: %v", err)
	}
	if !requesterView.CanEdit || requesterView.CanConfirm {
		t.Fatalf("requester flags: want can_edit=true can_confirm=false, got %v/%v",
			requesterView.CanEdit, requesterView.CanConfirm)
	}

	managerView, err := env.Reservations.GetReservation(manager.ID, manager.Role, view.ID)
	if err != nil {
		t.Fatalf("manager get: %v", err)
	}
	if managerView.CanEdit || !managerView.CanConfirm {
		t.Fatalf("manager flags: want can_edit=false can_confirm=true, got %v/%v",
			managerView.CanEdit, managerView.CanConfirm)
	}

	adminView, err := env.Reservations.GetReservation(admin.ID, admin.Role, view.ID)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if !adminView.CanEdit || !adminView.CanConfirm {
		t.Fatalf("admin flags: want can_edit=true can_confirm=true, got %v/%v",
			adminView.CanEdit, adminView.CanConfirm)
	}

	// 标记只看身份归属，确认后保持不变
	if _, err := env.Reservations.ConfirmReservation(manager.ID, manager.Role, view.ID, nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	adminView, err = env.Reservations.GetReservation(admin.ID, admin.Role, view.ID)
	if err != nil {
		t.Fatalf("admin get after confirm: %v", err)
	}
	if !adminView.CanEdit || !adminView.CanConfirm {
		t.Fatalf("admin flags after confirm: want can_edit=true can_confirm=true, got %v/%v",
			adminView.CanEdit, adminView.CanConfirm)
	}
	requesterView, err = env.Reservations.GetReservation(volunteer.ID, volunteer.Role, view.ID)
	if err != nil {
		t.Fatalf("requester get after confirm: %v", err)
	}
	if !requesterView.CanEdit || requesterView.CanConfirm {
		t.Fatalf("requester flags after confirm: want can_edit=true can_confirm=false, got %v/%v",
			requesterView.CanEdit, requesterView.CanConfirm)
	}
	managerView, err = env.Reservations.GetReservation(manager.ID, manager.Role, view.ID)
	if err != nil {
		t.Fatalf("manager get after confirm: %v", err)
	}
	if managerView.CanEdit || !managerView.CanConfirm {
		t.Fatalf("manager flags after confirm: want can_edit=false can_confirm=true, got %v/%v",
			managerView.CanEdit, managerView.CanConfirm)
	}
}

func TestListReservationsScoping(t *testing.T) {
	env := newTestEnv(t)
	admin := createTestUser(t, "admin", constants.RoleAdmin)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteerA := createTestUser(t, "volunteer a", constants.RoleVolunteer)
	volunteerB := createTestUser(t, "volunteer b", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	otherStation := createTestStation(t, admin.ID, "西区站")
	addTestInventory(t, station.ID, "water", true)
	addTestInventory(t, otherStation.ID, "water", true)

	mustCreateReservation(t, env, volunteerA, station.ID, []ReservationItemInput{{SupplyType: "water", Quantity: 1}})
	mustCreateReservation(t, env, volunteerB, station.ID, []ReservationItemInput{{SupplyType: "water", Quantity: 1}})
	mustCreateReservation(t, env, volunteerB, otherStation.ID, []ReservationItemInput{{SupplyType: "water", Quantity: 1}})

	views, total, err := env.Reservations.ListReservations(admin.ID, admin.Role, ReservationListInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if total != 3 || len(views) != 3 {
		t.Fatalf("admin list: want 3, got total=%d len=%d", total, len(views))
	}

	_, total, err = env.Reservations.ListReservations(manager.ID, manager.Role, ReservationListInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if total != 2 {
		t.Fatalf("manager list: want 2 reservations on own station, got %d", total)
	}

	_, total, err = env.Reservations.ListReservations(volunteerB.ID, volunteerB.Role, ReservationListInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("volunteer list: %v", err)
	}
	if total != 2 {
		t.Fatalf("volunteer list: want 2 own reservations, got %d", total)
	}
}
