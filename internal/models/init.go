package models

import (
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@relief.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}

// SeedSupplyTypes 初始化基础物资类型
func SeedSupplyTypes() error {
	defaults := []SupplyType{
		{Type: "water", DisplayName: "饮用水", Category: constants.SupplyCategoryWater, Unit: "瓶"},
		{Type: "instant_food", DisplayName: "即食食品", Category: constants.SupplyCategoryFood, Unit: "份"},
		{Type: "rice", DisplayName: "大米", Category: constants.SupplyCategoryFood, Unit: "袋"},
		{Type: "first_aid_kit", DisplayName: "急救包", Category: constants.SupplyCategoryMedical, Unit: "套"},
		{Type: "medicine", DisplayName: "常用药品", Category: constants.SupplyCategoryMedical, Unit: "盒"},
		{Type: "tent", DisplayName: "帐篷", Category: constants.SupplyCategoryShelter, Unit: "顶"},
		{Type: "blanket", DisplayName: "毛毯", Category: constants.SupplyCategoryShelter, Unit: "条"},
		{Type: "coat", DisplayName: "棉衣", Category: constants.SupplyCategoryClothing, Unit: "件"},
	}
	for _, supplyType := range defaults {
		var count int64
		if err := DB.Model(&SupplyType{}).Where("type = ?", supplyType.Type).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&supplyType).Error; err != nil {
			return err
		}
	}
	return nil
}
