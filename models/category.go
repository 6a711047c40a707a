package models

// Category is a node in the self-referential category tree. Titles are not
// unique: sibling subcategories under different parents may share a name
// (e.g. the same screen size under two laptop brands).
type Category struct {
	ID       uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string     `gorm:"not null" json:"title"`
	ParentID *uint      `gorm:"index" json:"parent_id,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
