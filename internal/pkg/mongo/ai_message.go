package mongo

import "time"

// AIMessage one turn of a user's conversation with the assistant
type AIMessage struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    uint64    `bson:"user_id" json:"userId"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
