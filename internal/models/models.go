package models

import "gorm.io/gorm"

// SetupModels runs migrations for every persisted model
func SetupModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Branch{},
		&Client{},
		&Order{},
		&OrderService{},
		&Guarantee{},
		&Invoice{},
		&OfferPrice{},
		&OfferService{},
		&WorkOrder{},
		&Voucher{},
		&Task{},
		&CarType{},
		&EmployeeReport{},
		&CatalogService{},
		&Sequence{},
	)
}
