package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roleModel{},
		&profileModel{},
		&providerModel{},
		&categoryModel{},
		&providerServiceModel{},
		&bookingModel{},
		&earningModel{},
		&conversationModel{},
		&messageModel{},
		&reviewModel{},
		&notificationModel{},
		&refreshTokenModel{},
	)
}
