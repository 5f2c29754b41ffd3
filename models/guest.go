package models

import "time"

type Guest struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	VIP       bool      `json:"vip"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// FullName trả về họ tên đầy đủ của khách
func (g *Guest) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	return g.FirstName + " " + g.LastName
}
