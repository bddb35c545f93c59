package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Playlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Lectures  []primitive.ObjectID `bson:"lectures" json:"lectures"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}
