package entity

import "time"

// TechStack represents a technology entry shown on the portfolio.
type TechStack struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category" json:"category"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Proficiency int       `bson:"proficiency" json:"proficiency"`
	Order       int       `bson:"order" json:"order"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
