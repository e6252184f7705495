package repository

import "gorm.io/gorm"

// profileColumns restricts a joined user row to its public identity fields.
// Every preload of a counterparty or author goes through this so credential
// columns never leave the store layer.
func profileColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "display_name", "avatar")
}

func likePattern(query string) string {
	return "%" + query + "%"
}
