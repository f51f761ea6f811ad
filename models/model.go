package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zsmartex/obex/config"
)

func Lock() (tx *gorm.DB) {
	return config.DataBase.Clauses(clause.Locking{Strength: "UPDATE"})
}
