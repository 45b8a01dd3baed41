package models

// Sport представляет вид спорта в таксономии площадок.
type Sport struct {
	ID     int     `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	NameZh *string `json:"name_zh" db:"name_zh"`
	Slug   string  `json:"slug" db:"slug"`
}
