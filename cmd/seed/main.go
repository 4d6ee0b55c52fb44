package main

import (
	"fmt"
	"os"

	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// 演示数据：账号、站点与库存，方便本地联调。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}); err != nil {
		fail("init db", err)
	}
	if err := models.AutoMigrate(); err != nil {
		fail("migrate", err)
	}
	if err := models.InitDefaultAdmin("", ""); err != nil {
		fail("seed admin", err)
	}
	if err := models.SeedSupplyTypes(); err != nil {
		fail("seed supply types", err)
	}

	manager := seedUser("王站长", "manager@relief.local", constants.RoleManager)
	volunteer := seedUser("李志愿", "volunteer@relief.local", constants.RoleVolunteer)
	seedUser("张受助", "victim@relief.local", constants.RoleVictim)

	station := seedStation(manager.ID, "城东应急物资站", "城东区救灾路 1 号", 30.6586, 104.0648)
	seedInventory(station.ID, "water", "瓶装饮用水，整箱发放", true)
	seedInventory(station.ID, "instant_food", "方便面与自热米饭", true)
	seedInventory(station.ID, "blanket", "加厚毛毯", false)

	logger.Infow("seed_completed",
		"manager_id", manager.ID,
		"volunteer_id", volunteer.ID,
		"station_id", station.ID,
	)
}

func seedUser(name, email, role string) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("relief123"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash password", err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		fail("seed user "+email, err)
	}
	return &user
}

func seedStation(managerID uint, name, address string, latitude, longitude float64) *models.SupplyStation {
	var existing models.SupplyStation
	if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return &existing
	}
	station := models.SupplyStation{
		ManagerID: managerID,
		Name:      name,
		Address:   address,
		Latitude:  latitude,
		Longitude: longitude,
		IsActive:  true,
	}
	if err := models.DB.Create(&station).Error; err != nil {
		fail("seed station "+name, err)
	}
	return &station
}

func seedInventory(stationID uint, supplyType, description string, available bool) {
	var count int64
	models.DB.Model(&models.InventoryItem{}).
		Where("station_id = ? AND supply_type = ?", stationID, supplyType).
		Count(&count)
	if count > 0 {
		return
	}
	item := models.InventoryItem{
		StationID:   stationID,
		SupplyType:  supplyType,
		Description: description,
		IsAvailable: available,
	}
	if err := models.DB.Create(&item).Error; err != nil {
		fail("seed inventory "+supplyType, err)
	}
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "seed failed at %s: %v\n", step, err)
	os.Exit(1)
}
