package db

import "gorm.io/gorm"

type Repositories struct {
	Members       *MemberRepository
	Periods       *PeriodRepository
	Activities    *ActivityRepository
	Announcements *AnnouncementRepository
	Admins        *AdminRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Members:       NewMemberRepository(database),
		Periods:       NewPeriodRepository(database),
		Activities:    NewActivityRepository(database),
		Announcements: NewAnnouncementRepository(database),
		Admins:        NewAdminRepository(database),
	}
}
