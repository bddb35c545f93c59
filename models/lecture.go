package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	Text        string             `bson:"text" json:"text"`
	CommentedBy primitive.ObjectID `bson:"commentedBy" json:"commentedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Lecture struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Subject     string               `bson:"subject,omitempty" json:"subject,omitempty"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL    string               `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"` // YouTube link or uploaded media
	MediaKey    string               `bson:"mediaKey,omitempty" json:"-"`                  // object key in S3 when uploaded
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether the user has liked the lecture.
func (l *Lecture) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range l.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
