package dummydb

import (
	"sync"

	"github.com/bgugger/atelier/core/content"
	"github.com/bgugger/atelier/core/user"
)

type (
	DB struct {
		user         *userTable
		page         *pageTable
		course       *courseTable
		registration *registrationTable
		artCategory  *artCategoryTable
		artImage     *artImageTable
		navItem      *navItemTable
	}

	userTable struct {
		sync.RWMutex
		seq   int
		table map[int]*user.User
	}

	pageTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.Page
	}

	courseTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.Course
	}

	registrationTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.Registration
	}

	artCategoryTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.ArtCategory
	}

	artImageTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.ArtImage
	}

	navItemTable struct {
		sync.RWMutex
		seq   int
		table map[int]*content.NavItem
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         &userTable{table: make(map[int]*user.User)},
		page:         &pageTable{table: make(map[int]*content.Page)},
		course:       &courseTable{table: make(map[int]*content.Course)},
		registration: &registrationTable{table: make(map[int]*content.Registration)},
		artCategory:  &artCategoryTable{table: make(map[int]*content.ArtCategory)},
		artImage:     &artImageTable{table: make(map[int]*content.ArtImage)},
		navItem:      &navItemTable{table: make(map[int]*content.NavItem)},
	}
	return db, nil
}
