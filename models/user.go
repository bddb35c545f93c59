package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants for user authorization.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var ValidRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"` // bcrypt hash
	Role          string               `bson:"role" json:"role"`  // admin, teacher, student
	SavedLectures []primitive.ObjectID `bson:"savedLectures" json:"savedLectures"`
}

// HasSaved reports whether the lecture is in the user's saved list.
func (u *User) HasSaved(lectureID primitive.ObjectID) bool {
	for _, id := range u.SavedLectures {
		if id == lectureID {
			return true
		}
	}
	return false
}
