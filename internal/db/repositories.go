package db

import "gorm.io/gorm"

type Repositories struct {
	Users  *UserRepository
	Cycles *CycleRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(database),
		Cycles: NewCycleRepository(database),
	}
}
