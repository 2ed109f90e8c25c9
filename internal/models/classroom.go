package models

// Classroom represents a bookable room with a seating capacity.
type Classroom struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Capacity int      `json:"capacity"`
	RoomType RoomType `json:"room_type,omitempty"`
}
